// Package jobs schedules automatic fulfillment runs.
//
// Each lane (same-day, next-day) gets an AutomaticRunJob backed by
// github.com/robfig/cron/v3. A tick builds an automatic RunPipelineCommand for the
// lane's current delivery date at the home location and runs it to completion.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(handler, []jobs.Lane{
//		{DeliveryType: kernel.SameDay, Spec: "*/20 6-14 * * *"},
//		{DeliveryType: kernel.NextDay, Spec: "0 15 * * *"},
//	}, home, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A run that fails in some stages is logged at Warn with its run id
// - A run that cannot be constructed or started is logged at Error
// - Ticks that fire while the previous run of the lane is still going are skipped
// - Failed job starts will stop any already running jobs
package jobs
