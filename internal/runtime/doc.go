// Package runtime runs the external programs boil shells out to (git, npx).
// Every invocation blocks until the child exits; failures are returned to the
// caller and never retried. The Runner interface lets callers substitute a
// recording fake in tests.
package runtime
