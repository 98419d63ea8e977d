// Monthly history accumulation — fixed 12-slot rings, one slot per month.
package city

// Series is a 12-slot ring of monthly samples, indexed by month−1.
type Series [12]float64

// Set records a sample for the given month (1–12).
func (s *Series) Set(month int, v float64) {
	if month < 1 || month > 12 {
		return
	}
	s[month-1] = v
}

// At returns the sample for the given month (1–12), 0 for invalid months.
func (s *Series) At(month int) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	return s[month-1]
}

// Reset clears all slots.
func (s *Series) Reset() {
	*s = Series{}
}

// Accumulation holds the rolling yearly history: one year marker and ten
// per-month series. All series reset when the year rolls over.
type Accumulation struct {
	Year         int    `json:"year"`
	Population   Series `json:"population"`
	Satisfaction Series `json:"satisfaction"`
	Income       Series `json:"income"`
	Expense      Series `json:"expense"`
	Balance      Series `json:"balance"`
	Births       Series `json:"births"`
	Deaths       Series `json:"deaths"`
	Inflow       Series `json:"inflow"`
	Outflow      Series `json:"outflow"`
	Housing      Series `json:"housing"`
}

// MonthlySample is one month's worth of history figures.
type MonthlySample struct {
	Population   int
	Satisfaction float64
	Income       int64
	Expense      int64
	Balance      int64
	Births       int
	Deaths       int
	Inflow       int
	Outflow      int
	Housing      int
}

// Record stores a sample in the slot for (year, month). A sample for a new
// year resets every series first, so January never reads through to stale
// December figures.
func (a *Accumulation) Record(year, month int, sample MonthlySample) {
	if year != a.Year {
		a.ResetForYear(year)
	}
	a.Population.Set(month, float64(sample.Population))
	a.Satisfaction.Set(month, sample.Satisfaction)
	a.Income.Set(month, float64(sample.Income))
	a.Expense.Set(month, float64(sample.Expense))
	a.Balance.Set(month, float64(sample.Balance))
	a.Births.Set(month, float64(sample.Births))
	a.Deaths.Set(month, float64(sample.Deaths))
	a.Inflow.Set(month, float64(sample.Inflow))
	a.Outflow.Set(month, float64(sample.Outflow))
	a.Housing.Set(month, float64(sample.Housing))
}

// ResetForYear clears every series and stamps the new year.
func (a *Accumulation) ResetForYear(year int) {
	*a = Accumulation{Year: year}
}
