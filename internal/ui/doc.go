// Package ui contains the Bubble Tea program that hosts a focus tree.
// The Model type focuses on message orchestration, while dedicated helpers own
// key delivery, pointer handling, rendering, and the finder prompt.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Every message is
//     one input batch: it is routed through a typed handler registry, and the
//     handlers only stage focus intents on the focus.Store.
//   - finishUpdate commits the staged intent once per message, so widgets see
//     at most one coherent set of focus notifications per batch.
//   - Keys go to the finder when it is open, then to the key target (the
//     focused node or the fallback), then to Tab navigation, and finally to
//     the global bindings (internal/ui/input.go).
//   - Left presses are hit-tested against the rendered rows and run the
//     pointer trigger followed by the node's own handler
//     (internal/ui/navigation.go).
//
// Input methods:
//   - imeBridge implements focus.IMEService on top of the textinput models
//     held by widget.TextInput nodes. Commands produced while opening a
//     session are collected and returned from the same update.
//
// Actions:
//   - Button presses arrive as widget.PressedMsg. The model snapshots the
//     form values and runs the action through the internal/ui/command bus,
//     off the UI goroutine, receiving a command.ActionResult back.
//
// Backend interactions:
//   - A backend.Watcher streams layout reloads; Update waits for those events
//     and hands them to the dispatcher, which reconciles the tree in place.
//     Nodes that disappear lose focus at the next commit.
package ui
