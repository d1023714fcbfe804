// ABOUTME: File-reload coordination (§4.4): snapshot/restore around reload batches
// ABOUTME: Affected variables show Loading while their file's cache entries are invalidated

package state

// ReloadStarted handles the "file F reloading" announcement (§6.3). The
// pre-reload viewport+cursor are snapshotted only for the first reload of
// a batch; cache entries for F are invalidated so affected variables show
// Loading until fresh data arrives.
func (e *Engine) ReloadStarted(filePath string) {
	e.mu.Lock()
	if !e.reloadPending {
		snap := reloadSnapshot{viewport: e.viewport, cursor: e.cursor}
		e.reloadSnapshot = &snap
		e.reloadPending = true
	}
	e.reloadingFiles[filePath] = true
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.cacheStore.InvalidateFile(filePath)

	e.refreshAndPublish()
	e.scheduleEvaluate()
}

// ReloadCompleted handles the "file reload finished" announcement (§6.3).
// When the last outstanding reload in the batch completes and no request
// is still in flight, the pre-reload viewport+cursor snapshot is restored.
func (e *Engine) ReloadCompleted(fileId string) {
	e.mu.Lock()
	delete(e.reloadingFiles, fileId)
	e.maybeRestoreReloadLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
}

// maybeRestoreReloadLocked restores the snapshotted viewport+cursor once
// every file in the batch has finished reloading and the coordinator has
// no outstanding request (§4.3 "If any deferred reload restoration is
// pending and no reload is outstanding, restore ..."). Caller holds e.mu.
// Returns whether a restore happened.
func (e *Engine) maybeRestoreReloadLocked() bool {
	if !e.reloadPending || len(e.reloadingFiles) != 0 {
		return false
	}
	if e.coordinator.InFlightCount() != 0 {
		return false
	}
	if e.reloadSnapshot != nil {
		e.viewport = e.reloadSnapshot.viewport
		e.cursor = e.reloadSnapshot.cursor
	}
	e.reloadSnapshot = nil
	e.reloadPending = false
	e.bumpRevisionLocked()
	return true
}
