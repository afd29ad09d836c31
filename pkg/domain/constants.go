package domain

// Field names shared by elements, renderers and aggregations.
const (
	KeyType           = "type"
	KeyProps          = "props"
	KeyChildren       = "children"
	KeyPosition       = "position"
	KeyScore          = "score"
	KeyCorrectAnswers = "correctAnswers"
	KeyAnswers        = "answers"
	KeyChecked        = "checked"
	KeyPercent        = "percent"
)

// PercentMin and PercentMax bound every percent-typed field.
const (
	PercentMin = 0
	PercentMax = 99
)

// TextType is the output type produced for scalar leaves (plain strings, numbers).
const TextType = "#text"
