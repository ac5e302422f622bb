package ui

import (
	"fmt"
	"image"
	"strconv"

	"sand-ca/internal/core"
)

const (
	pad       = 12
	rowHeight = 32
	btnSize   = 22
	btnGap    = 6
	titleY    = pad + 14
	rowsTop   = titleY + 12
	statLine  = 16
)

// shownAs maps a numeric control to the parameter that names its value.
var shownAs = map[string]string{
	"brush_kind": "brush_name",
	"spawner":    "spawner_name",
}

// stats are the read-only parameters listed under the controls.
var stats = []string{"tick", "falling", "moved", "sand", "water"}

// row is one adjustable parameter on the panel.
type row struct {
	ctrl  core.ParameterControl
	value int
	known bool
	text  string

	top         int
	minus, plus image.Rectangle
}

func newRows(ctrls []core.ParameterControl, width int) []row {
	rows := make([]row, len(ctrls))
	for i, c := range ctrls {
		top := rowsTop + i*rowHeight
		y := top + (rowHeight-btnSize)/2
		plusX := width - pad - btnSize
		rows[i] = row{
			ctrl:  c,
			text:  "--",
			top:   top,
			plus:  image.Rect(plusX, y, plusX+btnSize, y+btnSize),
			minus: image.Rect(plusX-btnGap-btnSize, y, plusX-btnGap, y+btnSize),
		}
	}
	return rows
}

// refresh reads the row's value from snap. Controls with a naming companion
// display that name instead of the number.
func (r *row) refresh(snap core.ParameterSnapshot) {
	r.known, r.text = false, "--"
	p, ok := snap.Lookup(r.ctrl.Key)
	if !ok {
		return
	}
	v, err := strconv.Atoi(p.Value)
	if err != nil {
		return
	}
	r.value, r.known, r.text = v, true, p.Value
	if key, ok := shownAs[r.ctrl.Key]; ok {
		if named, ok := snap.Lookup(key); ok {
			r.text = named.Value
		}
	}
}

// step returns the value one click in dir would set, and whether it differs.
func (r *row) step(dir int) (int, bool) {
	if !r.known {
		return r.value, false
	}
	next := r.ctrl.Apply(r.value, dir)
	return next, next != r.value
}

// hit finds the button under panel-local (x, y).
func hit(rows []row, x, y int) (int, int, bool) {
	pt := image.Pt(x, y)
	for i := range rows {
		switch {
		case pt.In(rows[i].minus):
			return i, -1, true
		case pt.In(rows[i].plus):
			return i, 1, true
		}
	}
	return 0, 0, false
}

func statLines(snap core.ParameterSnapshot) []string {
	var out []string
	for _, key := range stats {
		if p, ok := snap.Lookup(key); ok {
			out = append(out, fmt.Sprintf("%-8s %s", p.Label, p.Value))
		}
	}
	return out
}
