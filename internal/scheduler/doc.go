// Package scheduler provides the tick source that paces program execution.
//
// # Why Scheduler Exists
//
// The executor releases exactly one instruction per tick. Where those ticks
// come from is a separate concern: in production they come from a wall-clock
// ticker, in tests they are delivered by hand so a run can be stepped
// synchronously without sleeping.
//
// # Relationship with Other Components
//
//   - **Executor:** creates one Ticker per run and stops it when the run halts
//   - **App:** chooses RealClock and the tick interval from configuration
//   - **Tests:** use ManualClock to drive runs one tick at a time
package scheduler
