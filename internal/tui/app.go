package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/matheus3301/zapdesk/internal/api"
	"github.com/matheus3301/zapdesk/internal/bus"
	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/player"
	"github.com/matheus3301/zapdesk/internal/render"
	"github.com/matheus3301/zapdesk/internal/shopify"
	"github.com/matheus3301/zapdesk/internal/status"
	"github.com/matheus3301/zapdesk/internal/tui/keys"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
	"github.com/matheus3301/zapdesk/internal/tui/views"
	"github.com/matheus3301/zapdesk/internal/ws"
)

// Page names on the stack.
const (
	pageConversations = "conversations"
	pageThread        = "thread"
	pageOrders        = "orders"
	pageDetails       = "details"
	pageHelp          = "help"
)

// Deps bundles everything the shell composes.
type Deps struct {
	Agent    string
	Backend  string
	WSURL    string
	API      *api.Client
	Shopify  *shopify.Client
	Carts    *shopify.Carts
	Rec      *convo.Reconciler
	Loader   *convo.Loader
	Player   *player.Controller
	Previews *render.Previews
	Bus      *bus.Bus
	Machine  *status.Machine
	Logger   *zap.Logger
}

// App is the console shell: layout, navigation, key dispatch, and the
// glue between the bus and the views.
type App struct {
	deps  Deps
	theme *ui.Theme

	app      *tview.Application
	pages    *ui.Pages
	registry *keys.Registry

	logo    *ui.Logo
	info    *ui.SessionInfo
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	flash   *ui.FlashModel
	flashV  *ui.FlashBar
	prompt  *ui.Prompt
	bar     *views.StatusBar
	list    *views.ConversationList
	thread  *views.Thread
	orders  *views.CommercePanel
	details *views.Details
	help    *views.Help

	components map[string]ui.Component

	ctx    context.Context
	cancel context.CancelFunc

	started  time.Time
	messages []convo.Message
	catalog  *catalogIndex

	sockMu     sync.Mutex
	threadSock *ws.Client
}

// NewApp wires the shell together. Run starts it.
func NewApp(deps Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		deps:     deps,
		theme:    theme,
		app:      tview.NewApplication(),
		pages:    ui.NewPages(),
		registry: keys.NewRegistry(),
		logo:     ui.NewLogo(theme),
		info:     ui.NewSessionInfo(theme),
		menu:     ui.NewMenu(theme),
		crumbs:   ui.NewCrumbs(theme),
		flash:    ui.NewFlashModel(),
		flashV:   ui.NewFlashBar(theme),
		prompt:   ui.NewPrompt(theme),
		bar:      views.NewStatusBar(theme),
		list:     views.NewConversationList(theme),
		thread:   views.NewThread(theme),
		orders:   views.NewCommercePanel(theme),
		details:  views.NewDetails(theme),
		help:     views.NewHelp(theme),
		ctx:      ctx,
		cancel:   cancel,
		started:  time.Now(),
		catalog:  newCatalogIndex(),
	}

	a.components = map[string]ui.Component{
		pageConversations: a.list,
		pageThread:        a.thread,
		pageOrders:        a.orders,
		pageDetails:       a.details,
		pageHelp:          a.help,
	}

	a.bar.SetAgent(deps.Agent)
	a.setupLayout()
	a.setupBindings()
	a.setupCallbacks()
	return a
}

func (a *App) setupLayout() {
	a.pages.AddPage(pageConversations, a.list, true, true)
	a.pages.AddPage(pageThread, a.thread, true, false)
	a.pages.AddPage(pageOrders, a.orders, true, false)
	a.pages.AddPage(pageDetails, a.details, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.menu.Update(a.hintsFor(a.pages.Current()))
	})
	a.pages.Reset(pageConversations)

	header := tview.NewFlex().
		AddItem(a.logo, 14, 0, false).
		AddItem(a.info, 0, 1, false).
		AddItem(a.menu, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 6, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.flashV, 1, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.bar, 1, 0, false)

	a.app.SetRoot(root, true)
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) hintsFor(page string) []ui.MenuHint {
	if c, ok := a.components[page]; ok {
		return c.Hints()
	}
	return nil
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "Help",
		Handler: func() { a.pages.Push(pageHelp) },
	})

	a.registry.AddView(pageConversations, "quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Quit",
		Handler: func() { a.Stop() },
	})
	a.registry.AddView(pageConversations, "unread", &keys.Action{
		Rune: 'u', Key: tcell.KeyRune,
		Description: "Unread only",
		Handler: func() {
			f := a.deps.Loader.Filters()
			f.UnreadOnly = !f.UnreadOnly
			a.applyFilters(f)
		},
	})
	a.registry.AddView(pageConversations, "needs-reply", &keys.Action{
		Rune: 'n', Key: tcell.KeyRune,
		Description: "Needs reply",
		Handler: func() {
			f := a.deps.Loader.Filters()
			f.UnrespondedOnly = !f.UnrespondedOnly
			a.applyFilters(f)
		},
	})
	a.registry.AddView(pageConversations, "archived", &keys.Action{
		Rune: 'x', Key: tcell.KeyRune,
		Description: "Archived",
		Handler: func() {
			f := a.deps.Loader.Filters()
			f.Archived = !f.Archived
			a.applyFilters(f)
		},
	})
	a.registry.AddView(pageConversations, "clear", &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Description: "Clear filters",
		Handler: func() { a.applyFilters(convo.Filters{}) },
	})

	a.registry.AddView(pageThread, "details", &keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Description: "Details",
		Handler: func() { a.showDetails() },
	})
	a.registry.AddView(pageThread, "orders", &keys.Action{
		Rune: 'o', Key: tcell.KeyRune,
		Description: "Orders",
		Handler: func() { a.openOrders() },
	})
	a.registry.AddView(pageThread, "audio", &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Description: "Play audio",
		Handler: func() { a.toggleAudio() },
	})
	a.registry.AddView(pageThread, "speed", &keys.Action{
		Rune: '+', Key: tcell.KeyRune,
		Description: "Speed",
		Handler: func() {
			rate := a.deps.Player.CycleSpeed()
			a.flash.Info(fmt.Sprintf("playback %.1fx", rate))
		},
	})
}

func (a *App) setupCallbacks() {
	a.list.SetSelectedFunc(func(row, col int) {
		if id := a.list.Selected(); id != "" {
			a.openConversation(id)
		}
	})

	a.thread.SetOnSend(a.sendText)

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptFilter:
			f := a.deps.Loader.Filters()
			f.Query = text
			a.applyFilters(f)
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		}
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.orders.SetOnCustomerSearch(func(query string) {
		go func() {
			customers, err := a.deps.Shopify.SearchCustomers(a.ctx, query)
			if err != nil {
				a.deps.Logger.Warn("customer search failed", zap.Error(err))
				customers = nil
			}
			a.draw(func() { a.orders.ShowCustomers(customers) })
		}()
	})
	a.orders.SetOnProductSearch(func(query string) {
		go func() {
			products, err := a.deps.Shopify.SearchProducts(a.ctx, query)
			if err != nil {
				a.flash.Err(err)
				return
			}
			for _, p := range products {
				a.catalog.Put(p.RetailerID, render.CatalogProduct{
					Name:     p.Title,
					ImageURL: p.ImageURL,
				})
			}
			a.draw(func() { a.orders.ShowProducts(products) })
		}()
	})
	a.orders.SetOnVariantRequest(func(p shopify.Product) {
		go func() {
			variants, err := a.deps.Shopify.Variants(a.ctx, p.ID)
			if err != nil {
				a.flash.Err(err)
				return
			}
			a.draw(func() { a.orders.ShowVariants(p, variants) })
		}()
	})
	a.orders.SetOnShippingRequest(func() {
		go func() {
			options, err := a.deps.Shopify.ShippingOptions(a.ctx)
			if err != nil {
				a.flash.Err(err)
				return
			}
			a.draw(func() { a.orders.ShowShipping(options) })
		}()
	})
	a.orders.SetOnDraftChanged(func(d shopify.Draft) {
		a.deps.Carts.Save(d)
	})
	a.orders.SetOnSubmit(func(d shopify.Draft) {
		a.flash.Info("creating order...")
		go func() {
			order, err := a.deps.Shopify.CreateOrder(a.ctx, d)
			if err != nil {
				a.deps.Logger.Warn("order creation failed", zap.Error(err))
				a.flash.Err(fmt.Errorf("error creating order"))
				return
			}
			a.deps.Carts.Clear(d.UserID)
			a.deps.Bus.Publish(bus.Event{
				Kind:      bus.KindOrderCreated,
				Timestamp: time.Now(),
				Payload:   order,
			})
			a.flash.Info("order " + order.Name + " created")
			a.draw(func() { a.orders.ShowOrder(order) })
		}()
	})
}

// handleKey is the global input filter.
func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	current := a.pages.Current()

	if event.Key() == tcell.KeyEscape {
		if a.pages.Depth() > 1 {
			popped := a.pages.Pop()
			if popped == pageThread {
				a.closeConversation()
			}
			a.focusCurrent()
			return nil
		}
		return event
	}

	// Text inputs own their keys.
	if _, ok := a.app.GetFocus().(*tview.InputField); ok {
		return event
	}

	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case ':':
			a.showPrompt(ui.PromptCommand)
			return nil
		case '/':
			if current == pageConversations {
				a.showPrompt(ui.PromptFilter)
				return nil
			}
		case 'i':
			if current == pageThread {
				a.app.SetFocus(a.thread.Composer())
				return nil
			}
		}
		if current == pageConversations && event.Rune() >= '1' && event.Rune() <= '9' {
			if id := a.list.ByIndex(int(event.Rune() - '0')); id != "" {
				a.openConversation(id)
			}
			return nil
		}
	}

	if current == pageOrders && a.orders.HandleKey(event) {
		return nil
	}
	if a.registry.HandleEvent(current, event) {
		return nil
	}
	return event
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	if !a.pages.HasPage("prompt") {
		a.pages.AddPage("prompt", promptLayout(a.prompt), true, false)
	}
	a.pages.ShowPage("prompt")
	a.pages.SendToFront("prompt")
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.pages.HidePage("prompt")
	a.focusCurrent()
}

// promptLayout floats the prompt near the top of the screen.
func promptLayout(p *ui.Prompt) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p, 3, 0, true).
		AddItem(tview.NewBox(), 0, 1, false)
}

func (a *App) focusCurrent() {
	switch a.pages.Current() {
	case pageConversations:
		a.app.SetFocus(a.list)
	case pageThread:
		a.app.SetFocus(a.thread)
	case pageOrders:
		a.app.SetFocus(a.orders.Input())
	case pageDetails:
		a.app.SetFocus(a.details)
	case pageHelp:
		a.app.SetFocus(a.help)
	}
}

func (a *App) applyFilters(f convo.Filters) {
	a.deps.Loader.SetFilters(f)
	a.refreshList()
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "assign":
		a.mutateActive(func(id string) error {
			if err := a.deps.API.Assign(a.ctx, id, cmd.Args); err != nil {
				return err
			}
			a.deps.Rec.SetAssignment(id, cmd.Args)
			return nil
		})
	case "tag":
		tags := SplitList(cmd.Args)
		a.mutateActive(func(id string) error {
			if err := a.deps.API.SetTags(a.ctx, id, tags); err != nil {
				return err
			}
			a.deps.Rec.SetTags(id, tags)
			return nil
		})
	case "done":
		a.mutateActive(func(id string) error {
			var tags []string
			if c := a.deps.Rec.Get(id); c != nil {
				for _, t := range c.Tags {
					if t != convo.TagDone {
						tags = append(tags, t)
					}
				}
			}
			tags = append(tags, convo.TagDone)
			if err := a.deps.API.SetTags(a.ctx, id, tags); err != nil {
				return err
			}
			a.deps.Rec.SetTags(id, tags)
			return nil
		})
	case "agent":
		f := a.deps.Loader.Filters()
		f.Assigned = cmd.Args
		a.applyFilters(f)
	case "tags":
		f := a.deps.Loader.Filters()
		f.Tags = SplitList(cmd.Args)
		a.applyFilters(f)
	case "help", "h":
		a.pages.Push(pageHelp)
	case "quit", "q":
		a.Stop()
	default:
		a.flash.Warn("unknown command: " + cmd.Name)
	}
}

// mutateActive runs a conversation mutation against the open thread,
// or the selected list row when no thread is open.
func (a *App) mutateActive(fn func(userID string) error) {
	id := a.thread.UserID()
	if a.pages.Current() == pageConversations {
		id = a.list.Selected()
	}
	if id == "" {
		a.flash.Warn("no conversation selected")
		return
	}
	go func() {
		if err := fn(id); err != nil {
			a.flash.Err(err)
			return
		}
		a.redrawList()
	}()
}

func (a *App) openConversation(userID string) {
	c := a.deps.Rec.Get(userID)
	name := userID
	if c != nil && c.Name != "" {
		name = c.Name
	}
	a.deps.Rec.SetActive(userID)
	a.thread.SetConversation(userID, name)
	a.pages.Push(pageThread)
	a.app.SetFocus(a.thread)
	a.startThreadSocket(userID)

	go func() {
		if err := a.deps.API.MarkRead(a.ctx, userID); err != nil {
			a.deps.Logger.Debug("mark read failed", zap.Error(err))
		}
		msgs, err := a.deps.API.ListMessages(a.ctx, userID)
		if err != nil {
			a.flash.Err(err)
			return
		}
		a.draw(func() {
			a.messages = msgs
			a.refreshThread()
		})
	}()
}

func (a *App) closeConversation() {
	a.deps.Rec.SetActive("")
	a.deps.Player.Stop()
	if old := a.swapThreadSock(nil); old != nil {
		old.Stop()
	}
	a.messages = nil
	a.refreshList()
}

func (a *App) startThreadSocket(userID string) {
	endpoint := fmt.Sprintf("%s/ws/%s?agent=%s",
		a.deps.WSURL, url.PathEscape(userID), url.QueryEscape(a.deps.Agent))
	sock := ws.New(endpoint, "thread:"+userID, func(data []byte) {
		a.handleThreadFrame(userID, data)
	}, a.deps.Bus, a.deps.Logger)
	if old := a.swapThreadSock(sock); old != nil {
		old.Stop()
	}
	sock.Start(a.ctx)
}

// swapThreadSock replaces the per-conversation socket and returns the
// previous one. The socket is touched from the UI goroutine and the fx
// shutdown hook, hence the lock.
func (a *App) swapThreadSock(sock *ws.Client) *ws.Client {
	a.sockMu.Lock()
	old := a.threadSock
	a.threadSock = sock
	a.sockMu.Unlock()
	return old
}

func (a *App) currentThreadSock() *ws.Client {
	a.sockMu.Lock()
	defer a.sockMu.Unlock()
	return a.threadSock
}

// handleThreadFrame processes frames on the per-conversation channel.
func (a *App) handleThreadFrame(userID string, data []byte) {
	var frame struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		a.deps.Logger.Warn("malformed thread frame", zap.Error(err))
		return
	}
	switch frame.Type {
	case "message", "message_received":
		var msg convo.Message
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			a.deps.Logger.Warn("malformed thread message", zap.Error(err))
			return
		}
		if msg.UserID == "" {
			msg.UserID = userID
		}
		a.applyThreadMessage(msg)
	case "pong":
	default:
		a.deps.Logger.Debug("unknown thread frame", zap.String("type", frame.Type))
	}
}

// applyThreadMessage feeds a message through the reconciler's preview
// path and mirrors it into the open thread. Safe off the UI goroutine.
func (a *App) applyThreadMessage(msg convo.Message) {
	a.deps.Rec.Apply(convo.UpdateFromMessage(&msg))
	a.upsertThreadMessage(msg)
}

// upsertThreadMessage schedules a thread upsert on the UI goroutine.
func (a *App) upsertThreadMessage(msg convo.Message) {
	if msg.UserID != a.thread.UserID() {
		return
	}
	a.draw(func() { a.mergeThreadMessage(msg) })
}

// mergeThreadMessage upserts by message id without touching the
// reconciler. Duplicate deliveries replace in place. Must run on the
// UI goroutine.
func (a *App) mergeThreadMessage(msg convo.Message) {
	replaced := false
	for i := range a.messages {
		if msg.ID != "" && a.messages[i].ID == msg.ID {
			a.messages[i] = msg
			replaced = true
			break
		}
	}
	if !replaced {
		a.messages = append(a.messages, msg)
	}
	a.refreshThread()
}

func (a *App) sendText(text string) {
	userID := a.thread.UserID()
	if userID == "" {
		return
	}
	msg := convo.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      "text",
		Message:   mustJSON(text),
		Timestamp: convo.FlexTime(time.Now().UnixMilli()),
		FromMe:    true,
		Status:    convo.StatusSending,
	}

	frame, _ := json.Marshal(map[string]any{
		"type":          "message",
		"client_msg_id": msg.ID,
		"text":          text,
	})
	sock := a.currentThreadSock()
	if sock == nil {
		a.flash.Warn("not connected")
		return
	}

	// Optimistic insert, directly on the UI goroutine; the backend's
	// echo frame replaces it by client id.
	a.deps.Rec.Apply(convo.UpdateFromMessage(&msg))
	a.mergeThreadMessage(msg)
	go func() {
		if err := sock.Send(a.ctx, frame); err != nil {
			a.deps.Logger.Warn("send failed", zap.Error(err))
			msg.Status = convo.StatusFailed
			a.flash.Err(fmt.Errorf("send failed"))
			a.applyThreadMessage(msg)
		}
	}()
}

func mustJSON(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}

// refreshThread rebuilds the thread blocks and kicks off preview
// fetches for any new links. Must run on the UI goroutine.
func (a *App) refreshThread() {
	entries := views.BuildEntries(a.messages, a.catalog.Lookup)
	a.thread.Update(entries)
	for _, e := range entries {
		if u := e.Block.PreviewURL; u != "" {
			go a.fetchPreview(u)
		}
	}
}

func (a *App) fetchPreview(url string) {
	p, err := a.deps.Previews.Get(a.ctx, url)
	if err != nil || p.Title == "" {
		return
	}
	a.draw(func() { a.thread.SetPreview(url, p) })
}


func (a *App) toggleAudio() {
	audios := a.thread.Audios()
	if len(audios) == 0 {
		return
	}
	// Most recent voice note; repeated presses pause/resume it.
	a.deps.Player.Toggle(audios[len(audios)-1])
	a.thread.SetPlayback(a.deps.Player.Snapshot())
}

func (a *App) showDetails() {
	c := a.deps.Rec.Get(a.thread.UserID())
	a.details.Update(c)
	a.pages.Push(pageDetails)
}

func (a *App) openOrders() {
	userID := a.thread.UserID()
	if userID == "" {
		return
	}
	draft := a.deps.Carts.Load(userID)
	a.orders.Open(userID, userID, draft)
	a.pages.Push(pageOrders)
	a.app.SetFocus(a.orders.Input())
}

// draw schedules fn on the UI goroutine.
func (a *App) draw(fn func()) {
	a.app.QueueUpdateDraw(fn)
}

// refreshList repaints the conversation table. Must run on the UI
// goroutine; use redrawList from anywhere else.
func (a *App) refreshList() {
	a.list.Update(a.deps.Rec.List(), a.deps.Loader.Filters())
	a.updateSessionInfo()
}

func (a *App) redrawList() {
	a.draw(a.refreshList)
}

func (a *App) updateSessionInfo() {
	convos := a.deps.Rec.List()
	unread := 0
	for _, c := range convos {
		unread += c.UnreadCount
	}
	a.info.Update(&ui.SessionData{
		Agent:         a.deps.Agent,
		Backend:       a.deps.Backend,
		Connectivity:  string(a.deps.Machine.Current()),
		Conversations: len(convos),
		Unread:        unread,
		Uptime:        time.Since(a.started),
	})
}

// subscribeBus wires bus events into UI refreshes.
func (a *App) subscribeBus() {
	adminCh, unsubAdmin := a.deps.Bus.Subscribe("admin.", 64)
	listCh, unsubList := a.deps.Bus.Subscribe("convo.", 16)
	statusCh, unsubStatus := a.deps.Bus.Subscribe("status.", 16)
	go func() {
		defer unsubAdmin()
		defer unsubList()
		defer unsubStatus()
		for {
			select {
			case <-a.ctx.Done():
				return
			case evt := <-adminCh:
				a.handleAdminEvent(evt)
			case <-listCh:
				a.redrawList()
			case evt := <-statusCh:
				if change, ok := evt.Payload.(status.Change); ok {
					a.draw(func() { a.bar.SetState(change.To) })
				}
			}
		}
	}()
}

func (a *App) handleAdminEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindAdminMessage:
		msg, ok := evt.Payload.(*convo.Message)
		if !ok {
			return
		}
		a.deps.Rec.Apply(convo.UpdateFromMessage(msg))
		a.upsertThreadMessage(*msg)
	case bus.KindAdminAssignment:
		if as, ok := evt.Payload.(api.Assignment); ok {
			a.deps.Rec.SetAssignment(as.UserID, as.AssignedAgent)
		}
	}
}

// Run starts the TUI event loop and blocks until Stop.
func (a *App) Run() error {
	a.subscribeBus()
	go a.deps.Loader.Refresh()
	a.menu.Update(a.hintsFor(pageConversations))
	a.crumbs.Update(a.pages.Stack())
	a.updateSessionInfo()

	go a.tickLoop()
	return a.app.Run()
}

// tickLoop refreshes clock, flash, playback, and uptime displays.
func (a *App) tickLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.draw(func() {
				a.bar.SetFlash(a.flash.Get())
				a.flashV.Update(a.flash.GetMessage())
				a.updateSessionInfo()
				if a.pages.Current() == pageThread {
					a.thread.SetPlayback(a.deps.Player.Snapshot())
				}
			})
		}
	}
}

// Stop shuts the shell down.
func (a *App) Stop() {
	a.cancel()
	if sock := a.swapThreadSock(nil); sock != nil {
		sock.Stop()
	}
	a.app.Stop()
}
