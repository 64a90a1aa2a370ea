package ingestion

// Column names used by the Zomato dataset.
const (
	ColumnName     = "name"
	ColumnLocation = "location"
	ColumnCuisines = "cuisines"
	ColumnRate     = "rate"
	ColumnVotes    = "votes"
	ColumnCost     = "approx_cost(for two people)"
	ColumnRestType = "rest_type"
	ColumnAddress  = "address"
)

// costAliases are alternative cost column names found in preprocessed exports.
var costAliases = []string{ColumnCost, "price_for_two", "cost"}

// RawRow is an uncleaned dataset row. Every value is kept as text exactly as
// read, apart from list values which are joined with ", ".
type RawRow struct {
	Name     string
	Location string
	Cuisines string
	Rate     string
	Votes    string
	Cost     string
	RestType string
	Address  string
}
