// Package jobs tracks asynchronous pipeline runs. A Runner executes
// tasks on a bounded worker pool and records each one as a Job moving
// through pending, processing and a terminal completed or failed
// state. Callers submit work and poll the store by job ID.
package jobs
