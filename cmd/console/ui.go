package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/event"
	"github.com/jwebster45206/spellspire/pkg/shop"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/worldmap"
)

// ConsoleUI is the BubbleTea model that runs the game session.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config *ConsoleConfig
	client *http.Client

	run *state.RunState

	gameViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	err     error
	loading bool

	cursor      int
	typing      bool   // spelling input active
	challengeID string // uniqueId of the card being spelled
	hintShown   bool

	smithing bool   // campfire card-removal picker
	removing string // shop removal service item id, when picking a card

	statusMsg string

	// Quit confirmation state
	showQuitModal bool
}

// actionMsg carries the result of an API action back into Update.
type actionMsg struct {
	resp *ActionResponse
	err  error
}

// Styling
var (
	gamePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1)

	metaPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2).
			Align(lipgloss.Center)
)

// NewConsoleUI creates the game UI for an already-created run.
func NewConsoleUI(config *ConsoleConfig, client *http.Client, run *state.RunState) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = "Spell the word..."
	ta.Prompt = "┃ "
	ta.CharLimit = 60
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return &ConsoleUI{
		config:    config,
		client:    client,
		run:       run,
		textarea:  ta,
		statusMsg: "Choose your path.",
	}
}

func (m *ConsoleUI) Init() tea.Cmd {
	return nil
}

// sendAction posts one action to the API.
func (m *ConsoleUI) sendAction(req ActionRequest) tea.Cmd {
	runID := m.run.ID
	return func() tea.Msg {
		resp, err := doAction(m.client, m.config.APIBaseURL, runID, req)
		return actionMsg{resp: resp, err: err}
	}
}

func (m *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		gameWidth := int(float64(msg.Width) * 0.72)
		metaWidth := msg.Width - gameWidth - 6
		panelHeight := msg.Height - 6

		if !m.ready {
			m.gameViewport = viewport.New(gameWidth, panelHeight)
			m.metaViewport = viewport.New(metaWidth, panelHeight)
			m.ready = true
		} else {
			m.gameViewport.Width = gameWidth
			m.gameViewport.Height = panelHeight
			m.metaViewport.Width = metaWidth
			m.metaViewport.Height = panelHeight
		}
		m.textarea.SetWidth(gameWidth - 4)
		m.refreshContent()
		return m, nil

	case actionMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.refreshContent()
			return m, nil
		}
		m.err = nil
		m.applyResult(msg.resp)
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		if m.showQuitModal {
			switch msg.String() {
			case "y", "Y", "enter":
				return m, tea.Quit
			case "n", "N", "esc":
				m.showQuitModal = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			m.showQuitModal = true
			return m, nil
		}
		if m.loading {
			return m, nil
		}
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateBrowsing(msg)
	}

	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.textarea, taCmd = m.textarea.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

// updateTyping handles keys while the spelling input is focused.
func (m *ConsoleUI) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.run.Phase == state.PhaseLastStand {
			return m, nil // no backing out of a last stand
		}
		m.typing = false
		m.hintShown = false
		m.challengeID = ""
		m.textarea.Blur()
		m.textarea.Reset()
		m.refreshContent()
		return m, nil

	case "tab":
		if m.run.Phase == state.PhaseCombat && !m.hintShown {
			m.hintShown = true
			m.refreshContent()
		}
		return m, nil

	case "enter":
		attempt := strings.TrimSpace(m.textarea.Value())
		if attempt == "" {
			return m, nil
		}
		m.textarea.Reset()
		m.loading = true
		m.refreshContent()
		if m.run.Phase == state.PhaseLastStand {
			return m, m.sendAction(ActionRequest{Type: "last_stand", Attempt: attempt})
		}
		return m, m.sendAction(ActionRequest{
			Type:     "play_card",
			UniqueID: m.challengeID,
			Attempt:  attempt,
			UsedHint: m.hintShown,
		})
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.refreshContent()
	return m, cmd
}

// updateBrowsing handles keys while navigating lists.
func (m *ConsoleUI) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.showQuitModal = true
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
			m.refreshContent()
		}
		return m, nil

	case "e":
		if m.run.Phase == state.PhaseCombat && m.run.PendingDiscards == 0 {
			m.loading = true
			m.refreshContent()
			return m, m.sendAction(ActionRequest{Type: "end_turn"})
		}
		return m, nil

	case "s":
		if m.run.Phase == state.PhaseReward {
			m.loading = true
			m.refreshContent()
			return m, m.sendAction(ActionRequest{Type: "reward_skip"})
		}
		return m, nil

	case "esc":
		if m.smithing || m.removing != "" {
			m.smithing = false
			m.removing = ""
			m.cursor = 0
			m.refreshContent()
		}
		return m, nil

	case "enter":
		return m.selectCurrent()
	}

	var cmd tea.Cmd
	m.gameViewport, cmd = m.gameViewport.Update(msg)
	return m, cmd
}

// listLen is the length of whatever list the cursor is walking.
func (m *ConsoleUI) listLen() int {
	switch m.run.Phase {
	case state.PhaseMap:
		return len(m.availableNodes())
	case state.PhaseCombat:
		return len(m.run.Hand)
	case state.PhaseReward:
		return len(m.run.RewardOptions)
	case state.PhaseCampfire:
		if m.smithing {
			return len(m.run.Deck)
		}
		return 2
	case state.PhaseEvent:
		if ev, ok := event.ByID(m.run.ActiveEventID); ok {
			return len(ev.Choices)
		}
		return 0
	case state.PhaseShop:
		if m.removing != "" {
			return len(m.run.Deck)
		}
		if m.run.ShopState != nil {
			return len(m.run.ShopState.Items) + 1
		}
		return 1
	}
	return 0
}

// selectCurrent fires the action for the highlighted entry.
func (m *ConsoleUI) selectCurrent() (tea.Model, tea.Cmd) {
	fire := func(req ActionRequest) (tea.Model, tea.Cmd) {
		m.loading = true
		m.refreshContent()
		return m, m.sendAction(req)
	}

	switch m.run.Phase {
	case state.PhaseMap:
		nodes := m.availableNodes()
		if m.cursor < len(nodes) {
			return fire(ActionRequest{Type: "select_node", NodeID: nodes[m.cursor].ID})
		}

	case state.PhaseCombat:
		if m.cursor >= len(m.run.Hand) {
			return m, nil
		}
		c := m.run.Hand[m.cursor]
		if m.run.PendingDiscards > 0 {
			return fire(ActionRequest{Type: "discard_select", UniqueID: c.UniqueID})
		}
		if c.EnergyCost > m.run.Player.Energy {
			m.statusMsg = "Not enough energy."
			m.refreshContent()
			return m, nil
		}
		m.typing = true
		m.hintShown = false
		m.challengeID = c.UniqueID
		m.textarea.Focus()
		m.refreshContent()
		return m, nil

	case state.PhaseReward:
		if m.cursor < len(m.run.RewardOptions) {
			return fire(ActionRequest{Type: "reward_pick", UniqueID: m.run.RewardOptions[m.cursor].UniqueID})
		}

	case state.PhaseCampfire:
		if m.smithing {
			if m.cursor < len(m.run.Deck) {
				return fire(ActionRequest{Type: "rest_smith", UniqueID: m.run.Deck[m.cursor].UniqueID})
			}
			return m, nil
		}
		if m.cursor == 0 {
			return fire(ActionRequest{Type: "rest_sleep"})
		}
		m.smithing = true
		m.cursor = 0
		m.refreshContent()
		return m, nil

	case state.PhaseEvent:
		if ev, ok := event.ByID(m.run.ActiveEventID); ok && m.cursor < len(ev.Choices) {
			return fire(ActionRequest{Type: "event_choice", ChoiceID: ev.Choices[m.cursor].ID})
		}

	case state.PhaseShop:
		if m.removing != "" {
			if m.cursor < len(m.run.Deck) {
				return fire(ActionRequest{
					Type:           "shop_buy",
					ItemID:         m.removing,
					RemoveUniqueID: m.run.Deck[m.cursor].UniqueID,
				})
			}
			return m, nil
		}
		if m.run.ShopState == nil || m.cursor >= len(m.run.ShopState.Items) {
			return fire(ActionRequest{Type: "shop_leave"})
		}
		item := m.run.ShopState.Items[m.cursor]
		if item.IsSold {
			m.statusMsg = "Already sold."
			m.refreshContent()
			return m, nil
		}
		if item.Type == shop.ItemRemove {
			m.removing = item.ID
			m.cursor = 0
			m.refreshContent()
			return m, nil
		}
		return fire(ActionRequest{Type: "shop_buy", ItemID: item.ID})

	case state.PhaseActTransition:
		return fire(ActionRequest{Type: "next_act"})
	}
	return m, nil
}

// applyResult folds an action response into the model.
func (m *ConsoleUI) applyResult(resp *ActionResponse) {
	prevPhase := m.run.Phase
	m.run = resp.Run

	var parts []string
	if resp.Message != "" {
		parts = append(parts, resp.Message)
	}
	if resp.Play != nil {
		if resp.Play.DamageDealt > 0 {
			parts = append(parts, fmt.Sprintf("Dealt %d damage.", resp.Play.DamageDealt))
		}
		if resp.Play.Healed > 0 {
			parts = append(parts, fmt.Sprintf("Healed %d HP.", resp.Play.Healed))
		}
		if resp.Play.Mastered {
			parts = append(parts, "Word mastered! +1 shard.")
		}
		if resp.Play.DamageDealt == 0 && resp.Play.Healed == 0 && !resp.Play.Defeated {
			parts = append(parts, "Misspelled! The word returns to the draw pile.")
		}
	}
	if resp.Event != nil {
		parts = append(parts, resp.Event.Message)
	}
	if len(parts) > 0 {
		m.statusMsg = strings.Join(parts, " ")
	}

	if m.run.Phase != prevPhase || resp.Play != nil {
		m.typing = m.run.Phase == state.PhaseLastStand
		if m.typing {
			m.textarea.Focus()
		} else {
			m.textarea.Blur()
		}
		m.hintShown = false
		m.challengeID = ""
	}
	if m.run.Phase != prevPhase {
		m.cursor = 0
		m.smithing = false
		m.removing = ""
	}
	if m.cursor >= m.listLen() {
		m.cursor = 0
	}
}

// availableNodes lists the nodes the player can move to.
func (m *ConsoleUI) availableNodes() []*worldmap.Node {
	var nodes []*worldmap.Node
	for _, n := range m.run.Map {
		if n.Status == worldmap.StatusAvailable {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (m *ConsoleUI) refreshContent() {
	if !m.ready {
		return
	}
	m.gameViewport.SetContent(m.renderGame())
	m.metaViewport.SetContent(m.renderMeta())
}

func (m *ConsoleUI) renderGame() string {
	var b strings.Builder

	switch m.run.Phase {
	case state.PhaseMap:
		b.WriteString(m.renderMap())
	case state.PhaseCombat:
		b.WriteString(m.renderCombat())
	case state.PhaseReward:
		b.WriteString(m.renderReward())
	case state.PhaseCampfire:
		b.WriteString(m.renderCampfire())
	case state.PhaseEvent:
		b.WriteString(m.renderEvent())
	case state.PhaseShop:
		b.WriteString(m.renderShop())
	case state.PhaseLastStand:
		b.WriteString(m.renderLastStand())
	case state.PhaseActTransition:
		b.WriteString(m.renderTransition())
	case state.PhaseGameOver:
		b.WriteString(m.renderGameOver())
	default:
		b.WriteString(dimStyle.Render(string(m.run.Phase)))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	} else if m.statusMsg != "" {
		wrapped := wordwrap.String(m.statusMsg, m.gameViewport.Width-4)
		b.WriteString("\n\n" + statusStyle.Render(wrapped))
	}
	if m.loading {
		b.WriteString("\n\n" + loadingStyle.Render("..."))
	}
	return b.String()
}

func (m *ConsoleUI) renderMap() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("The Spire, Act %d", m.run.Act)))
	b.WriteString("\n\n")

	nodes := m.availableNodes()
	if len(nodes) == 0 {
		b.WriteString(dimStyle.Render("No path forward."))
		return b.String()
	}
	for i, n := range nodes {
		line := fmt.Sprintf("%s  (floor %d)", nodeLabel(n.Type), n.Y+1)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓ choose a path, enter to travel"))
	return b.String()
}

func nodeLabel(t worldmap.NodeType) string {
	switch t {
	case worldmap.NodeMonster:
		return "⚔ Monster"
	case worldmap.NodeElite:
		return "☠ Elite"
	case worldmap.NodeShop:
		return "⚖ Merchant"
	case worldmap.NodeCampfire:
		return "♨ Campfire"
	case worldmap.NodeEvent:
		return "? Unknown"
	case worldmap.NodeTreasure:
		return "◆ Treasure"
	case worldmap.NodeBoss:
		return "♛ Boss"
	}
	return string(t)
}

func (m *ConsoleUI) renderCombat() string {
	var b strings.Builder

	if e := m.run.Enemy; e != nil {
		b.WriteString(headingStyle.Render(e.Name))
		b.WriteString(fmt.Sprintf("  %d/%d HP", e.HP, e.MaxHP))
		if e.Block > 0 {
			b.WriteString(fmt.Sprintf("  [%d block]", e.Block))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Intent: " + intentLabel(e.Intent)))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Turn %d   Energy %d/%d   Combo %d\n\n",
		m.run.TurnCount, m.run.Player.Energy, m.run.Player.MaxEnergy, m.run.Player.Combo))

	if m.run.PendingDiscards > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Discard %d card(s):", m.run.PendingDiscards)))
		b.WriteString("\n\n")
	}

	for i, c := range m.run.Hand {
		line := fmt.Sprintf("[%d⚡] %s", c.EnergyCost, c.Name)
		if c.IsReview {
			line += dimStyle.Render("  (review)")
		}
		if i == m.cursor && !m.typing {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.typing {
		b.WriteString("\n" + m.renderChallenge())
	} else if m.run.PendingDiscards == 0 {
		b.WriteString("\n" + dimStyle.Render("enter: cast  e: end turn"))
	}
	return b.String()
}

func intentLabel(in actor.Intent) string {
	switch in.Type {
	case actor.IntentAttack:
		return fmt.Sprintf("attack for %d", in.Value)
	case actor.IntentDefend:
		return fmt.Sprintf("block %d", in.Value)
	case actor.IntentBuff:
		return "strengthen itself"
	case actor.IntentDebuff:
		return "curse you"
	}
	if in.Description != "" {
		return in.Description
	}
	return string(in.Type)
}

// renderChallenge shows the meaning and phonetic of the card being
// spelled, plus the word itself once a hint is taken.
func (m *ConsoleUI) renderChallenge() string {
	var c *card.Card
	for i := range m.run.Hand {
		if m.run.Hand[i].UniqueID == m.challengeID {
			c = &m.run.Hand[i]
			break
		}
	}
	if c == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("Spell the word:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Meaning:  %s\n", c.Vocab.Meaning))
	b.WriteString(fmt.Sprintf("  Phonetic: %s\n", c.Vocab.Phonetic))
	if m.hintShown {
		b.WriteString(statusStyle.Render("  Hint:     " + c.Vocab.Word))
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render("  tab: reveal the word (smaller reward)"))
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.textarea.View())
	return b.String()
}

func (m *ConsoleUI) renderReward() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Victory!"))
	b.WriteString("\n\n")

	if rw := m.run.LastRewards; rw != nil {
		b.WriteString(fmt.Sprintf("Gold earned: %d", rw.Gold.Total))
		if rw.Gold.IsPerfect {
			b.WriteString(statusStyle.Render("  (flawless!)"))
		}
		b.WriteString("\n")
		if rw.Relic != nil {
			b.WriteString(fmt.Sprintf("Relic: %s - %s\n", rw.Relic.Name, rw.Relic.Description))
		}
		if rw.Shards > 0 {
			b.WriteString(fmt.Sprintf("Shards: %d\n", rw.Shards))
		}
		b.WriteString("\n")
	}

	b.WriteString("Add a spell to your deck:\n\n")
	for i, c := range m.run.RewardOptions {
		line := fmt.Sprintf("%s  %s", c.Name, dimStyle.Render(c.Description))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter: take  s: skip"))
	return b.String()
}

func (m *ConsoleUI) renderCampfire() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Campfire"))
	b.WriteString("\n\n")

	if m.smithing {
		b.WriteString("Strike a spell from your deck:\n\n")
		for i, c := range m.run.Deck {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + c.Name))
			} else {
				b.WriteString("  " + c.Name)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + dimStyle.Render("esc: back"))
		return b.String()
	}

	options := []string{
		"Sleep   (restore 30% of max HP)",
		"Smith   (remove a card from your deck)",
	}
	for i, opt := range options {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *ConsoleUI) renderEvent() string {
	ev, ok := event.ByID(m.run.ActiveEventID)
	if !ok {
		return dimStyle.Render("The moment passes.")
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(ev.Title))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(ev.Description, m.gameViewport.Width-4))
	b.WriteString("\n\n")
	for i, c := range ev.Choices {
		line := c.Text
		if c.Description != "" {
			line += dimStyle.Render("  " + c.Description)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *ConsoleUI) renderShop() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("The Merchant"))
	b.WriteString(fmt.Sprintf("   Gold: %d\n\n", m.run.Player.Gold))

	if m.removing != "" {
		b.WriteString("Choose a card to remove:\n\n")
		for i, c := range m.run.Deck {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + c.Name))
			} else {
				b.WriteString("  " + c.Name)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + dimStyle.Render("esc: back"))
		return b.String()
	}

	if m.run.ShopState == nil {
		return b.String()
	}
	for i, item := range m.run.ShopState.Items {
		line := shopItemLabel(item)
		if item.IsSold {
			line = dimStyle.Render(line + "  (sold)")
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	leave := "Leave the shop"
	if m.cursor == len(m.run.ShopState.Items) {
		b.WriteString(selectedStyle.Render("> " + leave))
	} else {
		b.WriteString("  " + leave)
	}
	b.WriteString("\n")
	return b.String()
}

func shopItemLabel(item shop.Item) string {
	switch item.Type {
	case shop.ItemCard:
		if item.Card != nil {
			return fmt.Sprintf("%s  %dg", item.Card.Name, item.Price)
		}
	case shop.ItemRelic:
		if item.Relic != nil {
			return fmt.Sprintf("%s  %dg  %s", item.Relic.Name, item.Price, item.Relic.Description)
		}
	case shop.ItemRemove:
		return fmt.Sprintf("Card removal service  %dg", item.Price)
	}
	return item.ID
}

func (m *ConsoleUI) renderLastStand() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("LAST STAND"))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(
		"You have fallen. Spell every word correctly to claw your way back.",
		m.gameViewport.Width-4))
	b.WriteString("\n\n")

	total := len(m.run.LastStandWords)
	idx := m.run.LastStandIndex
	b.WriteString(fmt.Sprintf("Word %d of %d\n\n", idx+1, total))
	if idx < total {
		w := m.run.LastStandWords[idx]
		b.WriteString(fmt.Sprintf("  Meaning:  %s\n", w.Meaning))
		b.WriteString(fmt.Sprintf("  Phonetic: %s\n", w.Phonetic))
	}
	b.WriteString("\n" + m.textarea.View())
	return b.String()
}

func (m *ConsoleUI) renderTransition() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Act %d cleared!", m.run.Act)))
	b.WriteString("\n\n")
	if rw := m.run.LastRewards; rw != nil {
		b.WriteString(fmt.Sprintf("Gold earned: %d\n", rw.Gold.Total))
		if rw.Relic != nil {
			b.WriteString(fmt.Sprintf("Relic: %s\n", rw.Relic.Name))
		}
		if rw.Shards > 0 {
			b.WriteString(fmt.Sprintf("Shards: %d\n", rw.Shards))
		}
		if rw.HealedOnClear > 0 {
			b.WriteString(fmt.Sprintf("Healed: %d HP\n", rw.HealedOnClear))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter: climb higher"))
	return b.String()
}

func (m *ConsoleUI) renderGameOver() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("THE RUN IS OVER"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Act reached:  %d\n", m.run.Act))
	b.WriteString(fmt.Sprintf("Battles won:  %d\n", m.run.BattlesWon))
	b.WriteString(fmt.Sprintf("Gold held:    %d\n", m.run.Player.Gold))
	b.WriteString("\n" + dimStyle.Render("q: quit"))
	return b.String()
}

func (m *ConsoleUI) renderMeta() string {
	var b strings.Builder
	p := m.run.Player

	b.WriteString(headingStyle.Render(m.run.SaveName))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("HP:     %d/%d\n", p.HP, p.MaxHP))
	if p.Block > 0 {
		b.WriteString(fmt.Sprintf("Block:  %d\n", p.Block))
	}
	b.WriteString(fmt.Sprintf("Gold:   %d\n", p.Gold))
	b.WriteString(fmt.Sprintf("Energy: %d/%d\n", p.Energy, p.MaxEnergy))
	b.WriteString(fmt.Sprintf("Act:    %d\n", m.run.Act))
	b.WriteString(fmt.Sprintf("Deck:   %d cards\n", len(m.run.Deck)))

	if p.Status.Strength > 0 {
		b.WriteString(fmt.Sprintf("Str:    +%d\n", p.Status.Strength))
	}
	if p.Status.Weak > 0 {
		b.WriteString(fmt.Sprintf("Weak:   %d\n", p.Status.Weak))
	}
	if p.Status.Vulnerable > 0 {
		b.WriteString(fmt.Sprintf("Vuln:   %d\n", p.Status.Vulnerable))
	}

	if len(p.Relics) > 0 {
		b.WriteString("\n" + headingStyle.Render("Relics") + "\n")
		for _, r := range p.Relics {
			b.WriteString("• " + r.Name + "\n")
		}
	}
	return b.String()
}

func (m *ConsoleUI) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showQuitModal {
		modal := modalStyle.Render("Abandon the climb?\n\n[y] yes   [n] no")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	title := titleStyle.Width(m.width).Render("⚡ SPELLSPIRE ⚡")
	gamePanel := gamePanelStyle.Render(m.gameViewport.View())
	metaPanel := metaPanelStyle.Render(m.metaViewport.View())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)

	help := dimStyle.Render("ctrl+c: quit")
	return fmt.Sprintf("%s\n%s\n%s", title, panels, help)
}
