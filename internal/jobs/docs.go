// Package jobs provides scheduled background tasks for the dispatch engine.
//
// The single job here, DispatchSweepJob, fires every second through
// github.com/robfig/cron/v3 and runs ProcessDueSearchesCommandHandler: due
// searching sessions expand their radius, due expanded sessions stop and the
// customer is told no driver was found.
//
// The sweep holds no state of its own. Search deadlines live on the order
// rows and every transition is a conditional update, so overlapping sweeps
// from several replicas are safe and a missed tick only delays a transition
// until the next one.
//
// Usage:
//
//	jobManager := jobs.NewJobManager(processDueSearchesHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
