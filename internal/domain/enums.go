package domain

type RelationType string

const (
	RelationBlocks         RelationType = "blocks"
	RelationBlocked        RelationType = "blocked"
	RelationPrecedes       RelationType = "precedes"
	RelationFollows        RelationType = "follows"
	RelationRelates        RelationType = "relates"
	RelationDuplicates     RelationType = "duplicates"
	RelationDuplicated     RelationType = "duplicated"
	RelationCopiedTo       RelationType = "copied_to"
	RelationCopiedFrom     RelationType = "copied_from"
	RelationFinishToStart  RelationType = "finish_to_start"
	RelationStartToStart   RelationType = "start_to_start"
	RelationFinishToFinish RelationType = "finish_to_finish"
	RelationStartToFinish  RelationType = "start_to_finish"
)

// ValidRelationTypes is the canonical set of relation type strings the feed may carry.
var ValidRelationTypes = map[RelationType]bool{
	RelationBlocks: true, RelationBlocked: true,
	RelationPrecedes: true, RelationFollows: true,
	RelationRelates: true, RelationDuplicates: true, RelationDuplicated: true,
	RelationCopiedTo: true, RelationCopiedFrom: true,
	RelationFinishToStart: true, RelationStartToStart: true,
	RelationFinishToFinish: true, RelationStartToFinish: true,
}

// OwnerBlocksTarget reports whether the owner must finish before the target.
func (t RelationType) OwnerBlocksTarget() bool {
	return t == RelationBlocks || t == RelationPrecedes
}

// OwnerWaitsOnTarget reports whether the owner cannot finish before the target.
func (t RelationType) OwnerWaitsOnTarget() bool {
	return t == RelationBlocked || t == RelationFollows
}

type FlexibilityStatus string

const (
	FlexCompleted  FlexibilityStatus = "completed"
	FlexOnTrack    FlexibilityStatus = "on-track"
	FlexAtRisk     FlexibilityStatus = "at-risk"
	FlexOverbooked FlexibilityStatus = "overbooked"
)

type CapacityStatus string

const (
	CapacityAvailable  CapacityStatus = "available"
	CapacityBusy       CapacityStatus = "busy"
	CapacityOverloaded CapacityStatus = "overloaded"
)

type Granularity string

const (
	ZoomDay     Granularity = "day"
	ZoomWeek    Granularity = "week"
	ZoomMonth   Granularity = "month"
	ZoomQuarter Granularity = "quarter"
	ZoomYear    Granularity = "year"
)

// ValidGranularities is the canonical set of accepted zoom levels.
var ValidGranularities = map[Granularity]bool{
	ZoomDay: true, ZoomWeek: true, ZoomMonth: true, ZoomQuarter: true, ZoomYear: true,
}
