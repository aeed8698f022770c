package analyze

import (
	"regexp"

	"github.com/dstarikov/shipshape/internal/model"
)

// patternDef describes one extraction pattern: the regex plus which capture
// groups hold the entity name, numeric value, and unit. A group index of
// zero means the group does not exist for this pattern: nameGroup 0 yields
// the "Unknown" sentinel, unitGroup 0 marks year-valued patterns where no
// unit is expected.
type patternDef struct {
	re         *regexp.Regexp
	nameGroup  int
	valueGroup int
	unitGroup  int
}

// properName matches a capitalized multi-word vessel name ("Stanford Seal",
// "Dynamic 17"). Kept case-sensitive while unit groups are case-insensitive.
const properName = `([A-Z][\w-]*(?:\s+[A-Z0-9][\w-]*){0,3})`

const number = `([\d,]+(?:\.\d+)?)`

// valueBound is the extraction-time plausibility band per attribute.
// Deliberately wider than the ranking-time implausible-winner check: this
// filters parser noise, not genuine outliers.
type valueBound struct {
	min, max float64
}

var extractionBounds = map[model.Attribute]valueBound{
	model.AttributeTonnage:  {100, 1_000_000},
	model.AttributeLength:   {1, 2_000},
	model.AttributeSize:     {1, 1_000_000},
	model.AttributeSpeed:    {1, 200},
	model.AttributeAge:      {1800, 2100},
	model.AttributePower:    {10, 2_000_000},
	model.AttributeCapacity: {1, 50_000},
}

const tonnageUnits = `((?i:dwt|gt|gross\s+tons?|tonnes?|tons?))`
const lengthUnits = `((?i:meters?|metres?|ft|feet|foot|m))`
const speedUnits = `((?i:knots?|kn|km/?h|kph|mph))`
const powerUnits = `((?i:horsepower|hp|kilowatts?|kw|megawatts?|mw))`
const capacityUnits = `((?i:teu|containers?|passengers?|cars?))`
const sizeUnits = `((?i:dwt|gt|gross\s+tons?|tonnes?|tons?|meters?|metres?|ft|feet|foot|m))`

const namedVerb = `\s+(?:is|was|has|measures|carries|displaces|reaches|holds)\s+(?:a\s+|an\s+|about\s+|approximately\s+|around\s+|some\s+|up\s+to\s+)*`

// extractionPatterns is the closed attribute→pattern-set table.
var extractionPatterns = map[model.Attribute][]patternDef{
	model.AttributeTonnage: {
		{
			re:         regexp.MustCompile(properName + namedVerb + number + `\s*` + tonnageUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:tonnage|deadweight|displacement)\s+of\s+` + number + `\s*` + tonnageUnits + `?\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
		{
			re:         regexp.MustCompile(number + `\s*` + tonnageUnits + `\s+(?i:vessel|ship|carrier|tanker|bulker)\s+` + properName),
			nameGroup:  3,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
	model.AttributeLength: {
		{
			re:         regexp.MustCompile(properName + `\s+(?:is|measures|stretches|spans)\s+(?:about\s+|approximately\s+|around\s+)?` + number + `\s*` + lengthUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(properName + `\s+has\s+a\s+length\s+of\s+` + number + `\s*` + lengthUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:length)\s+of\s+` + number + `\s*` + lengthUnits + `\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
	model.AttributeSize: {
		{
			re:         regexp.MustCompile(properName + namedVerb + number + `\s*` + sizeUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:tonnage|deadweight|displacement|length)\s+of\s+` + number + `\s*` + sizeUnits + `?\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
		{
			re:         regexp.MustCompile(number + `\s*` + sizeUnits + `\s+(?i:vessel|ship|carrier|tanker|bulker)\s+` + properName),
			nameGroup:  3,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
	model.AttributeSpeed: {
		{
			re:         regexp.MustCompile(properName + `\s+(?:sails|cruises|travels)\s+at\s+(?:up\s+to\s+)?` + number + `\s*` + speedUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(properName + `\s+(?:can\s+reach|reaches|is\s+capable\s+of|has\s+a\s+(?:top|service|maximum)\s+speed\s+of)\s+` + number + `\s*` + speedUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:top|service|maximum)\s+speed\s+of\s+` + number + `\s*` + speedUnits + `\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
	model.AttributeAge: {
		{
			re:         regexp.MustCompile(properName + `\s+was\s+(?:built|launched|constructed|delivered|completed)\s+in\s+(\d{4})\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  0,
		},
		{
			re:         regexp.MustCompile(`(?i:built|launched|constructed|delivered)\s+in\s+(\d{4})\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  0,
		},
	},
	model.AttributePower: {
		{
			re:         regexp.MustCompile(properName + `\s+(?:is\s+powered\s+by|produces|delivers|generates|has)\s+(?:an?\s+engine\s+(?:of|producing)\s+)?` + number + `\s*` + powerUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:output|power)\s+of\s+` + number + `\s*` + powerUnits + `\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
	model.AttributeCapacity: {
		{
			re:         regexp.MustCompile(properName + `\s+(?:can\s+carry|carries|holds|accommodates|has\s+a\s+capacity\s+of)\s+(?:up\s+to\s+)?` + number + `\s*` + capacityUnits + `\b`),
			nameGroup:  1,
			valueGroup: 2,
			unitGroup:  3,
		},
		{
			re:         regexp.MustCompile(`(?i:capacity)\s+of\s+` + number + `\s*` + capacityUnits + `\b`),
			nameGroup:  0,
			valueGroup: 1,
			unitGroup:  2,
		},
	},
}
