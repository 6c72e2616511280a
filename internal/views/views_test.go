package views

import (
	"strings"
	"testing"
)

func TestRenderGridShowsOverflow(t *testing.T) {
	cell := GridCell{Day: 9, Lunar: "重阳", InMonth: true, Tasks: []TaskLine{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"},
	}}
	out := RenderGrid(GridData{
		Weekdays:  []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"},
		Cells:     []GridCell{cell, {Day: 10}, {Day: 11}, {Day: 12}, {Day: 13}, {Day: 14}, {Day: 15}},
		CellWidth: 10,
	})
	for _, want := range []string{"周一", "周日", "重阳", " 9", "+2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("grid missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\nd ") {
		t.Fatalf("fourth task should be folded into the overflow count:\n%s", out)
	}
}

func TestRenderWidgetEmpty(t *testing.T) {
	out := RenderWidget(WidgetData{Day: "18", Weekday: "周日", Lunar: "十八"})
	if !strings.Contains(out, "今天没有安排") || !strings.Contains(out, "0 待办") {
		t.Fatalf("unexpected empty widget:\n%s", out)
	}
}

func TestRenderListEmptyAndRows(t *testing.T) {
	if out := RenderList(nil); !strings.Contains(out, "暂无待办事项") {
		t.Fatalf("expected empty placeholder, got:\n%s", out)
	}
	out := RenderList([]ListRow{{ID: "42", Title: "开会", Date: "2026-10-19", Time: "15:00", HasAlarm: true, Selected: true}})
	for _, want := range []string{"> [ ]", "开会", "2026-10-19 15:00", "#42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list missing %q:\n%s", want, out)
		}
	}
}

func TestPadHandlesWideRunes(t *testing.T) {
	if got := pad("开会讨论预算", 6); got != "开会讨" {
		t.Fatalf("unexpected pad result %q", got)
	}
	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("unexpected pad result %q", got)
	}
}
