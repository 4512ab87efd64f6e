// Package optimistic runs commands that change local state first and persist
// it afterwards.
//
// A Command is applied synchronously by Execute. Its commit runs in the
// background, in FIFO order with every other command sharing the same key;
// commands with different keys commit independently. When a commit fails,
// the failed command and every command queued behind it for that key are
// undone, newest first, and reported through the Done callback. Nothing is
// retried.
package optimistic
