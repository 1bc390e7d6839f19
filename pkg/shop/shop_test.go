package shop

import (
	"math/rand"
	"testing"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func testWords() []vocab.Vocabulary {
	return []vocab.Vocabulary{
		vocab.New("Market", "", "", vocab.DifficultyEasy),
		vocab.New("Trade", "", "", vocab.DifficultyEasy),
		vocab.New("Profit", "", "", vocab.DifficultyEasy),
	}
}

func TestGenerateStock(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	p := actor.NewPlayer(nil)
	s := Generate(dungeon.ActFor(1), p, testWords(), r)

	var cards, relics, removes int
	for _, item := range s.Items {
		switch item.Type {
		case ItemCard:
			cards++
			if item.Price < 50 || item.Price > 99 {
				t.Errorf("act 1 card price %d outside 50-99", item.Price)
			}
		case ItemRelic:
			relics++
			if item.Price != 150 {
				t.Errorf("act 1 relic price = %d, want 150", item.Price)
			}
		case ItemRemove:
			removes++
			if item.Price != 50 {
				t.Errorf("act 1 removal price = %d, want 50", item.Price)
			}
		}
	}
	if cards != 3 || relics != 2 || removes != 1 {
		t.Errorf("stock = %d cards, %d relics, %d removes", cards, relics, removes)
	}
}

func TestGenerateSkipsOwnedRelics(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	p := actor.NewPlayer(nil)
	for _, relic := range actor.AllRelics {
		p.AddRelic(relic)
	}
	s := Generate(dungeon.ActFor(1), p, testWords(), r)
	for _, item := range s.Items {
		if item.Type == ItemRelic {
			t.Errorf("shop stocked owned relic %s", item.Relic.ID)
		}
	}
}

func TestActPricingAndDiscount(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	p := actor.NewPlayer(nil)
	s := Generate(dungeon.ActFor(3), p, testWords(), r)
	for _, item := range s.Items {
		if item.Type == ItemRelic && item.Price != 225 {
			t.Errorf("act 3 relic price = %d, want 225", item.Price)
		}
	}

	discounted := actor.NewPlayer([]string{actor.UnlockShopDiscount})
	s = Generate(dungeon.ActFor(1), discounted, testWords(), r)
	for _, item := range s.Items {
		if item.Type == ItemRelic && item.Price != 120 {
			t.Errorf("discounted relic price = %d, want 120", item.Price)
		}
	}
}

func TestPurchase(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	p := actor.NewPlayer(nil)
	p.Gold = 500
	s := Generate(dungeon.ActFor(1), p, testWords(), r)

	var relicItem, cardItem *Item
	for i := range s.Items {
		switch s.Items[i].Type {
		case ItemRelic:
			if relicItem == nil {
				relicItem = &s.Items[i]
			}
		case ItemCard:
			if cardItem == nil {
				cardItem = &s.Items[i]
			}
		}
	}

	goldBefore := p.Gold
	if !s.Purchase(relicItem.ID, p, nil) {
		t.Fatal("relic purchase failed")
	}
	if p.Gold != goldBefore-relicItem.Price {
		t.Errorf("gold = %d, want %d", p.Gold, goldBefore-relicItem.Price)
	}
	if !p.HasRelic(relicItem.Relic.ID) {
		t.Error("relic not granted")
	}
	if s.Purchase(relicItem.ID, p, nil) {
		t.Error("sold item repurchased")
	}

	var added []card.Card
	if !s.Purchase(cardItem.ID, p, func(c card.Card) { added = append(added, c) }) {
		t.Fatal("card purchase failed")
	}
	if len(added) != 1 {
		t.Errorf("card callback ran %d times", len(added))
	}

	p.Gold = 0
	if s.Purchase("remove", p, nil) {
		t.Error("broke player bought removal")
	}
}
