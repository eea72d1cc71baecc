package models

type RankingEntry struct {
	Name  string
	Count int
}

// Stats is a read-side aggregation over the current task and excuse
// collections. Nothing here is stored; it is recomputed on demand.
type Stats struct {
	TotalTasks          int
	CompletedTasks      int
	TotalDelayed        int
	TotalExcuses        int
	AverageExcuseLength int
	LongestStreak       int
	MostDelayed         *RankingEntry
	Ranking             []RankingEntry
}

type ExcuseStats struct {
	TotalExcuses  int
	AverageLength int
	Longest       *Excuse
	Recent        []Excuse
}
