// Package shop generates and settles merchant node offers. Offers are
// generated once on entry and persist inside the run state so a save and
// reload keeps the same stock and sold flags.
package shop

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/deck"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// ItemType tags what a shop slot sells.
type ItemType string

const (
	ItemCard   ItemType = "CARD"
	ItemRelic  ItemType = "RELIC"
	ItemRemove ItemType = "REMOVE"
)

// BaseRemoveCost is the card-removal price before act scaling.
const BaseRemoveCost = 50

// Item is one purchasable slot.
type Item struct {
	ID     string       `json:"id"`
	Type   ItemType     `json:"type"`
	Card   *card.Card   `json:"card,omitempty"`
	Relic  *actor.Relic `json:"relic,omitempty"`
	Price  int          `json:"price"`
	IsSold bool         `json:"isSold"`
}

// State is a merchant's full stock.
type State struct {
	Items      []Item `json:"items"`
	RemoveCost int    `json:"removeCost"`
}

// Generate stocks a shop: 3 cards, up to 2 unowned relics, and one
// card-removal service, all scaled by the act's price multiplier and
// reduced by the player's shop discount.
func Generate(act dungeon.ActConfig, player *actor.Player, vocabList []vocab.Vocabulary, r *rand.Rand) *State {
	discount := 1.0 - player.ShopDiscount

	price := func(base float64) int {
		return int(math.Floor(base * act.PriceMultiplier * discount))
	}

	s := &State{RemoveCost: BaseRemoveCost}

	for _, c := range deck.RandomRewardOptions(vocabList, r) {
		c := c
		s.Items = append(s.Items, Item{
			ID:    uuid.NewString(),
			Type:  ItemCard,
			Card:  &c,
			Price: price(float64(r.Intn(50) + 50)),
		})
	}

	count := 0
	for _, relic := range actor.AllRelics {
		if count >= 2 {
			break
		}
		if player.HasRelic(relic.ID) {
			continue
		}
		relic := relic
		s.Items = append(s.Items, Item{
			ID:    uuid.NewString(),
			Type:  ItemRelic,
			Relic: &relic,
			Price: price(150),
		})
		count++
	}

	s.Items = append(s.Items, Item{
		ID:    "remove",
		Type:  ItemRemove,
		Price: price(BaseRemoveCost),
	})
	return s
}

// Purchase settles an item: checks gold, marks it sold, and applies the
// goods. Card removal only charges here; the caller removes the chosen
// card. Returns false when the item is missing, sold, or unaffordable.
func (s *State) Purchase(itemID string, player *actor.Player, addCard func(card.Card)) bool {
	var item *Item
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			item = &s.Items[i]
			break
		}
	}
	if item == nil || item.IsSold || player.Gold < item.Price {
		return false
	}

	player.Gold -= item.Price
	item.IsSold = true

	switch item.Type {
	case ItemCard:
		if item.Card != nil && addCard != nil {
			addCard(*item.Card)
		}
	case ItemRelic:
		if item.Relic != nil {
			player.AddRelic(*item.Relic)
		}
	}
	return true
}
