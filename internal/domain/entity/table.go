package entity

// Table is a header row plus body rows, ready for a render primitive.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	// MaxColWidths caps the display width of each column; zero or missing means no cap.
	MaxColWidths []int `json:"-"`
}
