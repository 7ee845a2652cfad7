package db

type Run struct {
	ID          string
	CreatedAt   int64
	ContentHash string
}

type Room struct {
	RunID     string
	DayOffset int64
	Date      string
	TimeSlot  string
	Building  string
	Name      string
	Capacity  string
	Equipment string
}
