/*
Package observer provides push-stream observers and the wrappers that
enforce the observer contract on them.

The contract every downstream consumer may assume:

  - at most one terminal notification (OnError or OnCompleted) is delivered
  - after a terminal notification, nothing further is delivered
  - notifications on a given observer are totally ordered; no two run
    concurrently

A raw observer built with Create promises none of this; the wrappers layer
the guarantees on:

	o := observer.Create(onNext, onError, onCompleted)

	safe := observer.Safe(o)             // terminal finality, silent dropping
	checked := observer.Checked(o)       // rejects reentrancy and post-terminal calls
	sync := observer.Synchronize(o)      // reentrant-mutex serialization
	async := observer.SynchronizeAsync(o) // async-lock serialization, queued reentrancy

Wrappers take an Observer and return an Observer, so they compose freely.

Synchronize and SynchronizeAsync differ in how they treat reentrant
notifications: the former runs them inline under its reentrant gate, the
latter pushes them onto the lock's queue even when the caller already holds
it. Use the async variant when producers may recurse deeply or when fairness
between producers matters.
*/
package observer
