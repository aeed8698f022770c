package security

import "regexp"

// categoryPattern binds one named category to the patterns that trigger it.
// Categories are what gets reported, never full match text, to bound log
// volume.
type categoryPattern struct {
	category string
	patterns []*regexp.Regexp
}

// injectionCategories covers instruction-override, role-manipulation,
// system-prompt-exposure, and output-format-hijacking phrasing. Each
// category short-circuits on its first matching pattern.
var injectionCategories = []categoryPattern{
	{
		category: "instruction_override",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ignore\s+(?:all\s+)?(?:previous|prior|above|earlier)\s+(?:instructions?|context|prompts?|messages?|rules?)`),
			regexp.MustCompile(`(?i)disregard\s+(?:all\s+)?(?:previous|prior|above|earlier|your)\s+(?:instructions?|context|prompts?|constraints?)`),
			regexp.MustCompile(`(?i)forget\s+(?:everything|all)\s+(?:you\s+know|previous|prior|above)`),
		},
	},
	{
		category: "role_manipulation",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)you\s+are\s+now\s+an?\s`),
			regexp.MustCompile(`(?i)\bact\s+as\s+(?:an?|the)\s`),
			regexp.MustCompile(`(?i)pretend\s+(?:to\s+be|you\s+are)`),
		},
	},
	{
		category: "system_prompt_exposure",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:show|reveal|print|display|output|repeat)\s+(?:me\s+)?your\s+(?:system\s+)?prompt`),
			regexp.MustCompile(`(?i)what\s+(?:is|are)\s+your\s+(?:system\s+prompt|instructions)`),
		},
	},
	{
		category: "output_hijacking",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)respond\s+with\s+only`),
			regexp.MustCompile(`(?i)reply\s+only\s+with`),
			regexp.MustCompile(`(?i)output\s+format\s*:\s*\{`),
		},
	},
}

// delimiterEscape flags triple-delimiter blocks co-occurring with
// boundary phrasing ("end of", "start of"), a common prompt-escape shape.
var (
	tripleDelimiters = []string{`"""`, "'''", "```"}
	boundaryPhrasing = regexp.MustCompile(`(?i)\b(?:end|start)\s+of\b`)
)

// xssCategories covers script tags, a fixed on-event handler list, the
// javascript: scheme, and executable data: URLs.
var xssCategories = []categoryPattern{
	{
		category: "script_tag",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<\s*script\b`),
			regexp.MustCompile(`(?i)<\s*/\s*script\s*>`),
		},
	},
	{
		category: "event_handler",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bon(?:error|load|click|dblclick|mouseover|mouseout|mousemove|focus|blur|keydown|keyup|keypress|submit|change|input|wheel|drag|drop)\s*=`),
		},
	},
	{
		category: "javascript_scheme",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)javascript\s*:`),
		},
	},
	{
		category: "data_url",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)data:\s*text/html`),
			regexp.MustCompile(`(?i)data:\s*application/x-javascript`),
		},
	},
}

// sqlCategories covers tautology injections, UNION SELECT, destructive
// statements, and comment-terminator artifacts. These are warnings, not
// errors: there is no SQL backend here, the check protects downstream
// consumers.
var sqlCategories = []categoryPattern{
	{
		category: "tautology",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)'\s*or\s*'[^']*'\s*=\s*'`),
			regexp.MustCompile(`(?i)"\s*or\s*"[^"]*"\s*=\s*"`),
			regexp.MustCompile(`(?i)\bor\s+1\s*=\s*1\b`),
		},
	},
	{
		category: "union_select",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bunion\s+(?:all\s+)?select\b`),
		},
	},
	{
		category: "destructive_statement",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:drop|truncate)\s+(?:table|database)\b`),
			regexp.MustCompile(`(?i)\bdelete\s+from\b`),
			regexp.MustCompile(`(?i)\binsert\s+into\b`),
		},
	},
	{
		category: "comment_artifact",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)--\s*$`),
			regexp.MustCompile(`/\*[\s\S]*?\*/`),
		},
	},
}
