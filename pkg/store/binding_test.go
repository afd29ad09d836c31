package store_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestBindField_Identity(t *testing.T) {
	s := store.New(quizDeck())
	path := domain.PropPath(0, 0, "label")

	f := s.BindField(path, store.WithDefault("untitled"))
	assert.Equal(t, "untitled", f.Value)

	f.OnChange("Question 1")
	assert.Equal(t, "Question 1", s.GetValue(path, nil))
	assert.Equal(t, "Question 1", s.BindField(path).Value)
}

func TestBindField_Converters(t *testing.T) {
	s := store.New(quizDeck())
	path := domain.PropPath(0, 0, "label")

	f := s.BindField(path,
		store.WithToStore(func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }),
		store.WithFromStore(func(v any) any { return fmt.Sprintf("<%v>", v) }),
	)
	f.OnChange("abc")

	assert.Equal(t, "ABC", s.GetValue(path, nil))
	assert.Equal(t, "<ABC>", s.BindField(path,
		store.WithFromStore(func(v any) any { return fmt.Sprintf("<%v>", v) }),
	).Value)
}

func TestBindField_RejectedConversionIsNoop(t *testing.T) {
	s := store.New(quizDeck())
	f := s.BindField(domain.PropPath(0, 0, "label"),
		store.WithToStore(func(any) (any, error) { return nil, fmt.Errorf("nope") }),
	)
	f.OnChange("x")
	assert.Zero(t, s.Version())
}

func TestBindPercentField(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{150, 99},
		{-5, 0},
		{42.6, 43},
		{42.4, 42},
		{"12", 12},
		{99.5, 99},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			s := store.New(quizDeck())
			path := domain.PropPath(0, 0, domain.KeyPercent)
			s.BindPercentField(path).OnChange(tt.in)
			assert.Equal(t, tt.want, s.GetValue(path, nil))
		})
	}
}

func TestBindPercentField_NotANumber(t *testing.T) {
	s := store.New(quizDeck())
	s.BindPercentField(domain.PropPath(0, 0, domain.KeyPercent)).OnChange("lots")
	assert.Zero(t, s.Version())
}

func TestBindScoreField(t *testing.T) {
	s := store.New(quizDeck())
	path := domain.PropPath(0, 0, domain.KeyScore)

	s.BindScoreField(path).OnChange(-3)
	assert.Equal(t, 0.0, s.GetValue(path, nil))

	s.BindScoreField(path).OnChange("4.5")
	assert.Equal(t, 4.5, s.GetValue(path, nil))
}
