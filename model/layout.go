package model

type ZoneType = string

const (
	ZoneAppend ZoneType = "APPEND"
	ZoneInsert ZoneType = "INSERT"
	ZoneEvent  ZoneType = "EVENT"
)

type HitZone struct {
	StartX  float64  `json:"start_x"`
	EndX    float64  `json:"end_x"`
	Index   int      `json:"index"`
	Type    ZoneType `json:"type"`
	EventID string   `json:"event_id,omitempty"`
}

// LaidOutEvent is a copy of an input event annotated with its geometry.
type LaidOutEvent struct {
	Event
	X      float64     `json:"x"`
	Start  int         `json:"start"`
	Quants int         `json:"quants"`
	Chord  ChordLayout `json:"chord_layout"`
}

type MeasureLayout struct {
	HitZones        []HitZone          `json:"hit_zones"`
	EventPositions  map[string]float64 `json:"event_positions"`
	TotalWidth      float64            `json:"total_width"`
	ProcessedEvents []LaidOutEvent     `json:"processed_events"`
}

type BeamGroup struct {
	IDs       []string  `json:"ids"`
	StartX    float64   `json:"start_x"`
	EndX      float64   `json:"end_x"`
	StartY    float64   `json:"start_y"`
	EndY      float64   `json:"end_y"`
	Direction Direction `json:"direction"`
	Type      Duration  `json:"type"`
}

func (b BeamGroup) Slope() float64 {
	if b.EndX == b.StartX {
		return 0
	}
	return (b.EndY - b.StartY) / (b.EndX - b.StartX)
}

// YAt is the beam line's y at x.
func (b BeamGroup) YAt(x float64) float64 {
	return b.StartY + b.Slope()*(x-b.StartX)
}

type TupletGroup struct {
	StartIndex int      `json:"start_index"`
	EventIDs   []string `json:"event_ids"`
	Ratio      [2]int   `json:"ratio"`
}

type Bracket struct {
	EventIDs  []string  `json:"event_ids"`
	StartX    float64   `json:"start_x"`
	EndX      float64   `json:"end_x"`
	Y         float64   `json:"y"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
}

type SystemLayout struct {
	QuantToX map[int]float64 `json:"quant_to_x"`
	// quant -> widest notehead offset of the events starting there
	Leads      map[int]float64 `json:"leads"`
	TotalWidth float64         `json:"total_width"`
}

type PlacementMode = string

const (
	ModeChord  PlacementMode = "CHORD"
	ModeInsert PlacementMode = "INSERT"
	ModeAppend PlacementMode = "APPEND"
)

type Placement struct {
	Mode        PlacementMode `json:"mode"`
	Index       int           `json:"index"`
	VisualQuant int           `json:"visual_quant"`
}

// StaffMeasureLayout is everything laid out for one staff at one measure index.
type StaffMeasureLayout struct {
	Clef        Clef              `json:"clef"`
	Layout      MeasureLayout     `json:"layout"`
	Beams       []BeamGroup       `json:"beams"`
	Tuplets     []TupletGroup     `json:"tuplets"`
	Brackets    []Bracket         `json:"brackets"`
	Accidentals map[string]string `json:"accidentals"`
}

// MeasureColumn is one measure index across every staff.
type MeasureColumn struct {
	Index  int                  `json:"index"`
	System SystemLayout         `json:"system"`
	Staves []StaffMeasureLayout `json:"staves"`
}

type ScoreLayout struct {
	Title      string          `json:"title"`
	Measures   []MeasureColumn `json:"measures"`
	TotalWidth float64         `json:"total_width"`
}
