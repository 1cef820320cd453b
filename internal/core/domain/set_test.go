package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetFromRef(t *testing.T) {
	ref := SetRef{
		ID:             "swsh3",
		Name:           "Darkness Ablaze",
		Logo:           "https://assets.example/swsh3/logo",
		CardCountTotal: 201,
	}

	set := SetFromRef(ref)

	assert.Equal(t, "swsh3", set.ID)
	assert.Equal(t, "Darkness Ablaze", set.Name)
	assert.Equal(t, UnknownSeries, set.Series)
	assert.Equal(t, "https://assets.example/swsh3/logo", set.Logo)
	assert.Equal(t, 201, set.CardCountTotal)
	assert.True(t, set.Partial)
}

func TestSetFromRef_MissingName(t *testing.T) {
	set := SetFromRef(SetRef{ID: "base1"})
	assert.Equal(t, "base1", set.Name)
}

func TestSet_Ref(t *testing.T) {
	set := Set{ID: "base1", Name: "Base Set", Series: "Base", Symbol: "sym", CardCountOfficial: 102}

	ref := set.Ref()

	assert.Equal(t, SetRef{ID: "base1", Name: "Base Set", Symbol: "sym", CardCountOfficial: 102}, ref)
}

func TestCard_HasType(t *testing.T) {
	card := Card{Types: []string{"Fire", "Colorless"}}

	assert.True(t, card.HasType("fire"))
	assert.True(t, card.HasType("Colorless"))
	assert.False(t, card.HasType("Water"))
	assert.False(t, (&Card{}).HasType("Fire"))
}
