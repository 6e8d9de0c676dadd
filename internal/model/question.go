package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice" // discrete options, each with a score vector
	QuestionTypeRating       QuestionType = "rating"        // numeric scale, scaled into the primary dimension
	QuestionTypeBinary       QuestionType = "binary"        // two discrete options
)

// Option is a discrete answer choice carrying a six-dimension score
// contribution. Immutable once loaded.
type Option struct {
	Value  string `json:"value" bson:"value" yaml:"value"`
	Text   string `json:"text" bson:"text" yaml:"text"`
	Scores Vector `json:"scores" bson:"scores" yaml:"scores"`
}

// RatingRange bounds the accepted values of a rating question.
type RatingRange struct {
	Min int `json:"min" bson:"min" yaml:"min"`
	Max int `json:"max" bson:"max" yaml:"max"`
}

// Question is one entry of the immutable question catalog. Order is
// the global 1-based position; Section groups questions into the five
// assessment sections. Exactly one catalog question has Dynamic set:
// its content is synthesized per session from the answered prefix, and
// its catalog options double as the static fallback set.
type Question struct {
	ID      string       `json:"id" bson:"_id" yaml:"id"`
	Text    string       `json:"text" bson:"text" yaml:"text"`
	Type    QuestionType `json:"type" bson:"type" yaml:"type"`
	Section int          `json:"section" bson:"section" yaml:"section"`
	Order   int          `json:"order" bson:"order" yaml:"order"`
	Tier    string       `json:"tier,omitempty" bson:"tier,omitempty" yaml:"tier"`
	Primary Dimension    `json:"primary" bson:"primary" yaml:"primary"`
	Dynamic bool         `json:"dynamic,omitempty" bson:"dynamic,omitempty" yaml:"dynamic"`
	Options []Option     `json:"options,omitempty" bson:"options,omitempty" yaml:"options"`
	Range   *RatingRange `json:"range,omitempty" bson:"range,omitempty" yaml:"range"`
}

// OptionByValue returns the option with the given value token, or nil.
func (q *Question) OptionByValue(value string) *Option {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}
