package constants

// Persisted key layout. The namespace is flat; history keys carry the date
// as a suffix.
const (
	HistoryKeyPrefix        = "dailyHistory_"
	TotalDailyStepsKey      = "totalDailySteps"
	LastSaveDateKey         = "lastSaveDate"
	DayResetInitialStepsKey = "dayResetInitialSteps"
	LastResultKey           = "lastResultKey"
	PreviousResultKey       = "previousResultKey"
)

// NoResultText is shown for a session result slot that was never filled
const NoResultText = "нет данных"

// StepsWord is the unit appended to session results
const StepsWord = "шагов"

// HistoryKey returns the storage key for a day identifier
func HistoryKey(date string) string {
	return HistoryKeyPrefix + date
}
