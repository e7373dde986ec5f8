package jobs

// Result - итог одного прогона джобы. Skipped использует только
// notify: просроченные уведомления не доставляются и не попадают
// в Success.
type Result struct {
	Total   int
	Success int
	Failed  int
	Skipped int
}
