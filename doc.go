// Package baostack brings up a local dev stack (a backend server and a UI
// dev server) for a desktop wrapper and tears it down again.
//
// On Start, baostack probes the server and client ports. When both already
// accept connections nothing is spawned. Otherwise it locates the workspace
// root, runs the bootstrap command (by default "bun run dev") there with PORT
// and HOST set, and blocks until both ports are reachable or the ready
// timeout elapses. Shutdown terminates whatever was spawned and is safe to
// call any number of times, from any goroutine, whether or not Start ran.
//
// # Basic Usage
//
//	import "github.com/baobuildbuddy/baostack"
//
//	stack, err := baostack.New()
//	if err != nil {
//	    log.Fatal(err) // e.g. PORT=abc
//	}
//	defer stack.Shutdown()
//
//	ep, err := stack.Start(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ep) // server on http://127.0.0.1:3000, ui on http://127.0.0.1:3001
//
// # Environment
//
// Host, ports and the bootstrap command come from the environment:
//
//	BAO_STACK_HOST               host to probe and pass as HOST (127.0.0.1)
//	PORT                         server port (3000)
//	CLIENT_PORT                  client/UI port (3001)
//	BAO_STACK_BOOTSTRAP_COMMAND  bootstrap executable (bun)
//	BAO_WORKSPACE_ROOT           workspace root, skips discovery
//	BAO_DISABLE_AUTH             forwarded verbatim to the child when set
//
// A port variable that is set but not a base-10 integer in [0, 65535] makes
// New fail with ErrInvalidPortValue.
//
// # Workspace Discovery
//
// Without BAO_WORKSPACE_ROOT, the directories given by WithStartDirs (by
// default the build-time source directory and the executable's directory)
// are walked upward. The first directory holding both package.json and a
// packages/ directory is the root. The working directory is tried last.
//
// # Concurrent Wrappers
//
// Spawns are serialized across processes with a file lock keyed by host and
// server port, so two wrappers started together run the bootstrap once. The
// second one finds the stack ready after the first releases the lock. Use
// WithoutSpawnLock to opt out.
package baostack
