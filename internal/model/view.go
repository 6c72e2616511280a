package model

import "time"

type ViewMode string

const (
	ViewGrid     ViewMode = "grid"
	ViewList     ViewMode = "list"
	ViewWidget   ViewMode = "widget"
	ViewSettings ViewMode = "settings"
)

func (v ViewMode) IsValid() bool {
	switch v {
	case ViewGrid, ViewList, ViewWidget, ViewSettings:
		return true
	default:
		return false
	}
}

// CalendarDay is one cell of the month grid. It is recomputed whenever the
// displayed month changes and is never persisted.
type CalendarDay struct {
	Date           time.Time
	InCurrentMonth bool
	IsToday        bool
	Lunar          string
}
