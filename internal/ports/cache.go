package ports

// ScoreCache memoizes expected scores by target for the life of the process.
type ScoreCache interface {
	Get(target int) (float64, bool)
	Add(target int, score float64)
}
