// Package fs provides the file system abstraction behind the local blob store.
//
// Production code uses [Default], a thin wrapper over the os package. Tests
// wrap it in a [FaultyFS] to fail writes, syncs, closes or renames on chosen
// paths:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//
// Operations take no context.Context; local syscalls are not interruptible.
package fs
