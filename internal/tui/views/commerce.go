package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/matheus3301/zapdesk/internal/shopify"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

type commerceMode int

const (
	modeCustomer commerceMode = iota
	modeProduct
	modeVariant
	modeShipping
	modeConfirm
	modeDone
)

// CommercePanel drives the order creation flow for one conversation:
// find the customer (prefilled with the conversation's phone number),
// search products, pick variants into the cart, choose shipping, and
// submit. The draft cart is persisted by the caller between openings.
type CommercePanel struct {
	*tview.Flex
	theme   *ui.Theme
	input   *tview.InputField
	results *tview.Table
	summary *tview.TextView

	mode      commerceMode
	userID    string
	customers []shopify.Customer
	customer  *shopify.Customer
	draft     shopify.Draft
	products  []shopify.Product
	product   shopify.Product
	variants  []shopify.Variant
	shipping  []shopify.ShippingOption

	onCustomerSearch func(query string)
	onProductSearch  func(query string)
	onVariantRequest func(p shopify.Product)
	onShippingReq    func()
	onSubmit         func(d shopify.Draft)
	onDraftChanged   func(d shopify.Draft)
}

// NewCommercePanel creates the commerce side panel.
func NewCommercePanel(theme *ui.Theme) *CommercePanel {
	input := tview.NewInputField().
		SetFieldWidth(0)
	input.SetBorder(true)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	results := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	results.SetBorder(true)
	results.SetBorderColor(theme.BorderColor)
	results.SetBackgroundColor(theme.BgColor)
	results.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	summary := tview.NewTextView().
		SetDynamicColors(true)
	summary.SetBorder(true)
	summary.SetBorderColor(theme.BorderColor)
	summary.SetBackgroundColor(theme.BgColor)
	summary.SetTextColor(theme.FgColor)
	summary.SetTitle(" Cart ")
	summary.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 3, 0, true).
		AddItem(results, 0, 2, false).
		AddItem(summary, 0, 1, false)

	p := &CommercePanel{
		Flex:    flex,
		theme:   theme,
		input:   input,
		results: results,
		summary: summary,
	}

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		query := input.GetText()
		switch p.mode {
		case modeCustomer:
			if p.onCustomerSearch != nil {
				p.onCustomerSearch(query)
			}
		case modeProduct:
			if p.onProductSearch != nil {
				p.onProductSearch(query)
			}
		}
	})

	results.SetSelectedFunc(func(row, col int) {
		p.selectRow(row)
	})

	return p
}

// Name implements Component.
func (p *CommercePanel) Name() string { return "Orders" }

// Init implements Component.
func (p *CommercePanel) Init() {}

// Start implements Component.
func (p *CommercePanel) Start() {}

// Stop implements Component.
func (p *CommercePanel) Stop() {}

// Hints implements Component.
func (p *CommercePanel) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Search/Select"},
		{Key: "s", Description: "Shipping"},
		{Key: "c", Description: "Checkout"},
		{Key: "x", Description: "Clear cart"},
		{Key: "Esc", Description: "Back"},
	}
}

// Input exposes the search field for focus handling.
func (p *CommercePanel) Input() *tview.InputField { return p.input }

// Results exposes the result table for focus handling.
func (p *CommercePanel) Results() *tview.Table { return p.results }

func (p *CommercePanel) SetOnCustomerSearch(fn func(query string)) { p.onCustomerSearch = fn }

func (p *CommercePanel) SetOnProductSearch(fn func(query string)) { p.onProductSearch = fn }

func (p *CommercePanel) SetOnVariantRequest(fn func(shopify.Product)) { p.onVariantRequest = fn }

func (p *CommercePanel) SetOnShippingRequest(fn func()) { p.onShippingReq = fn }

func (p *CommercePanel) SetOnSubmit(fn func(shopify.Draft)) { p.onSubmit = fn }

func (p *CommercePanel) SetOnDraftChanged(fn func(shopify.Draft)) { p.onDraftChanged = fn }

// Open resets the panel for a conversation. phone prefills the
// customer search; draft restores a previously saved cart.
func (p *CommercePanel) Open(userID, phone string, draft shopify.Draft) {
	p.userID = userID
	p.customer = nil
	p.draft = draft
	p.draft.UserID = userID
	p.products = nil
	p.variants = nil
	p.shipping = nil
	p.setMode(modeCustomer)
	p.input.SetText(phone)
	p.renderSummary()
	p.clearResults(" Customers ")
}

// Draft returns the current draft cart.
func (p *CommercePanel) Draft() shopify.Draft { return p.draft }

// HandleKey processes panel-level shortcuts. Reports whether the key
// was consumed.
func (p *CommercePanel) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		if ev.Key() == tcell.KeyEnter && p.mode == modeConfirm {
			p.submit()
			return true
		}
		return false
	}
	switch ev.Rune() {
	case 's':
		if p.onShippingReq != nil {
			p.onShippingReq()
		}
		return true
	case 'c':
		p.setMode(modeConfirm)
		p.renderConfirm()
		return true
	case 'x':
		p.draft.Items = nil
		p.draft.Shipping = nil
		p.notifyDraft()
		p.renderSummary()
		return true
	}
	return false
}

// ShowCustomers renders customer search results. An empty slice shows
// the "no customer found" notice required by the flow.
func (p *CommercePanel) ShowCustomers(customers []shopify.Customer) {
	p.setMode(modeCustomer)
	p.customers = customers
	p.clearResults(" Customers ")
	if len(customers) == 0 {
		p.results.SetCell(1, 0, tview.NewTableCell(" no customer found").
			SetTextColor(p.theme.FlashWarnColor).SetSelectable(false))
		return
	}
	p.setHeader("NAME", "EMAIL", "PHONE")
	for i, c := range customers {
		row := i + 1
		p.results.SetCell(row, 0, p.cell(c.Name, 1))
		p.results.SetCell(row, 1, p.cell(c.Email, 1))
		p.results.SetCell(row, 2, p.cell(c.Phone, 0))
	}
}

// ShowProducts renders product search results.
func (p *CommercePanel) ShowProducts(products []shopify.Product) {
	p.setMode(modeProduct)
	p.products = products
	p.clearResults(" Products ")
	p.setHeader("TITLE", "RETAILER ID")
	for i, prod := range products {
		row := i + 1
		p.results.SetCell(row, 0, p.cell(prod.Title, 1))
		p.results.SetCell(row, 1, p.cell(prod.RetailerID, 0))
	}
}

// ShowVariants renders the variant picker for a product.
func (p *CommercePanel) ShowVariants(product shopify.Product, variants []shopify.Variant) {
	p.setMode(modeVariant)
	p.product = product
	p.variants = variants
	p.clearResults(fmt.Sprintf(" %s ", tview.Escape(truncate(product.Title, 30))))
	p.setHeader("VARIANT", "PRICE")
	for i, v := range variants {
		row := i + 1
		p.results.SetCell(row, 0, p.cell(v.Title, 1))
		p.results.SetCell(row, 1, p.cell(v.Price, 0))
	}
}

// ShowShipping renders the shipping option picker.
func (p *CommercePanel) ShowShipping(options []shopify.ShippingOption) {
	p.setMode(modeShipping)
	p.shipping = options
	p.clearResults(" Shipping ")
	p.setHeader("OPTION", "PRICE")
	for i, o := range options {
		row := i + 1
		p.results.SetCell(row, 0, p.cell(o.Name, 1))
		p.results.SetCell(row, 1, p.cell(o.Price, 0))
	}
}

// ShowOrder renders the confirmation view with a scannable status QR.
func (p *CommercePanel) ShowOrder(order *shopify.Order) {
	p.setMode(modeDone)
	p.clearResults(" Order Created ")
	p.summary.Clear()
	fmt.Fprintf(p.summary, "[springgreen::b] Order %s created[-:-:-]\n", tview.Escape(order.Name))
	if order.Total != "" {
		fmt.Fprintf(p.summary, " Total: %s\n", tview.Escape(order.Total))
	}
	if order.StatusURL != "" {
		fmt.Fprintf(p.summary, "\n%s\n [::d]%s[-:-:-]\n", renderQR(order.StatusURL), tview.Escape(order.StatusURL))
	}
}

func (p *CommercePanel) selectRow(row int) {
	idx := row - 1
	switch p.mode {
	case modeCustomer:
		if idx >= 0 && idx < len(p.customers) {
			c := p.customers[idx]
			p.customer = &c
			p.draft.CustomerID = c.ID
			p.notifyDraft()
			p.setMode(modeProduct)
			p.input.SetText("")
			p.clearResults(" Products ")
			p.renderSummary()
		}
	case modeProduct:
		if idx >= 0 && idx < len(p.products) && p.onVariantRequest != nil {
			p.onVariantRequest(p.products[idx])
		}
	case modeVariant:
		if idx >= 0 && idx < len(p.variants) {
			p.addLine(p.variants[idx])
			p.setMode(modeProduct)
			p.clearResults(" Products ")
			p.ShowProducts(p.products)
		}
	case modeShipping:
		if idx >= 0 && idx < len(p.shipping) {
			o := p.shipping[idx]
			p.draft.Shipping = &o
			p.notifyDraft()
			p.setMode(modeConfirm)
			p.renderConfirm()
		}
	}
	p.renderSummary()
}

// addLine merges a variant into the cart, bumping quantity on repeat.
func (p *CommercePanel) addLine(v shopify.Variant) {
	for i := range p.draft.Items {
		if p.draft.Items[i].VariantID == v.ID {
			p.draft.Items[i].Quantity++
			p.notifyDraft()
			return
		}
	}
	title := p.product.Title
	if v.Title != "" {
		title += " / " + v.Title
	}
	p.draft.Items = append(p.draft.Items, shopify.LineItem{
		VariantID: v.ID,
		Title:     title,
		Quantity:  1,
		Price:     v.Price,
	})
	p.notifyDraft()
}

func (p *CommercePanel) submit() {
	if p.onSubmit != nil {
		p.onSubmit(p.draft)
	}
}

func (p *CommercePanel) notifyDraft() {
	if p.onDraftChanged != nil {
		p.onDraftChanged(p.draft)
	}
}

func (p *CommercePanel) setMode(m commerceMode) {
	p.mode = m
	switch m {
	case modeCustomer:
		p.input.SetLabel(" customer: ")
	case modeProduct:
		p.input.SetLabel(" product: ")
	default:
		p.input.SetLabel(" ")
	}
}

func (p *CommercePanel) renderSummary() {
	if p.mode == modeDone {
		return
	}
	p.summary.Clear()
	if p.customer != nil {
		fmt.Fprintf(p.summary, " [::b]%s[-:-:-]\n", tview.Escape(p.customer.Name))
	}
	if len(p.draft.Items) == 0 {
		fmt.Fprint(p.summary, " [::d]cart empty[-:-:-]\n")
		return
	}
	for _, it := range p.draft.Items {
		fmt.Fprintf(p.summary, " %d× %s %s\n", it.Quantity, tview.Escape(truncate(it.Title, 34)), it.Price)
	}
	if p.draft.Shipping != nil {
		fmt.Fprintf(p.summary, " [::d]ship: %s %s[-:-:-]\n", tview.Escape(p.draft.Shipping.Name), p.draft.Shipping.Price)
	}
}

func (p *CommercePanel) renderConfirm() {
	p.clearResults(" Confirm ")
	p.results.SetCell(1, 0, tview.NewTableCell(" Enter to create order, Esc to go back").
		SetSelectable(false).SetTextColor(p.theme.CounterColor))
	p.renderSummary()
}

func (p *CommercePanel) clearResults(title string) {
	p.results.Clear()
	p.results.SetTitle(title)
	p.results.SetTitleColor(p.theme.TitleColor)
}

func (p *CommercePanel) setHeader(cols ...string) {
	for i, c := range cols {
		p.results.SetCell(0, i, tview.NewTableCell(" "+c).
			SetSelectable(false).
			SetTextColor(p.theme.TableHeaderFg).
			SetBackgroundColor(p.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}
}

func (p *CommercePanel) cell(text string, exp int) *tview.TableCell {
	return tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(text))).
		SetExpansion(exp).
		SetTextColor(p.theme.FgColor)
}

// renderQR converts a string to a compact scannable block using
// Unicode half-block characters.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "  (QR generation failed: " + err.Error() + ")"
	}

	bitmap := qr.Bitmap()
	rows := len(bitmap)
	cols := 0
	if rows > 0 {
		cols = len(bitmap[0])
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		sb.WriteString("  ")
		for x := 0; x < cols; x++ {
			top := bitmap[y][x]
			bot := false
			if y+1 < rows {
				bot = bitmap[y+1][x]
			}
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top && !bot:
				sb.WriteRune('▀')
			case !top && bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
