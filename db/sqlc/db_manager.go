package sqlc

// DbManager groups the managers built over one Querier. A nil *DbManager
// means the server runs without a database.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) *DbManager {
	return &DbManager{
		Analytics: NewAnalyticsManager(queries),
	}
}

func (m *DbManager) AnalyticsEnabled() bool {
	return m != nil && m.Analytics != nil
}
