package app

import (
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	testlog "service-rider-dispatch/internal/testutil"
)

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

// withCleanArgs gives config.Load a fresh flag set and no test-runner flags.
func withCleanArgs(t *testing.T) {
	t.Helper()

	oldArgs := os.Args
	oldFlags := pflag.CommandLine
	os.Args = []string{"app.test"}
	pflag.CommandLine = pflag.NewFlagSet("app.test", pflag.ContinueOnError)
	t.Cleanup(func() {
		os.Args = oldArgs
		pflag.CommandLine = oldFlags
	})
}

// withFreshRegistry swaps the default Prometheus registry for the test.
func withFreshRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()

	oldReg := prometheus.DefaultRegisterer
	oldGath := prometheus.DefaultGatherer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldReg
		prometheus.DefaultGatherer = oldGath
	})
	return reg
}

func requireEventually(t *testing.T, timeout time.Duration, tick time.Duration, condition func() bool, msgAndArgs ...any) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			if len(msgAndArgs) > 0 {
				t.Fatalf(msgAndArgs[0].(string), msgAndArgs[1:]...)
			}
			t.Fatalf("condition not satisfied within %s", timeout)
		}
		<-ticker.C
	}
}
