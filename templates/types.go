// Package templates holds the view data structs and the hand-written templ
// components that render them. Components are code-only (templ.ComponentFunc)
// so no generation step is involved.
package templates

// ActiveProject identifies the project selected in the header switcher.
type ActiveProject struct {
	ID   string
	Name string
}

// ProjectSelectorItem is one entry of the header project dropdown.
type ProjectSelectorItem struct {
	ID       string
	Name     string
	Client   string
	IsActive bool
}

// HeaderData feeds the top navigation bar.
type HeaderData struct {
	ActiveProject *ActiveProject
	Projects      []ProjectSelectorItem
	UserRole      string
}

// ── Projects ─────────────────────────────────────────────────────────────

type ProjectListItem struct {
	ID          string
	Name        string
	RefNumber   string
	ClientName  string
	Status      string
	UpdatedAgo  string
	QuoteNumber string
	Progress    int
}

type ProjectListData struct {
	Header HeaderData
	Items  []ProjectListItem
	Total  int
}

type ProjectFormData struct {
	Header    HeaderData
	ID        string // empty on create
	Name      string
	RefNumber string
	ClientID  string
	Status    string
	City      string
	Clients   []ClientOption
	Errors    map[string]string
}

type ClientOption struct {
	ID   string
	Name string
}

type ProjectViewData struct {
	Header      HeaderData
	ID          string
	Name        string
	RefNumber   string
	ClientName  string
	Status      string
	City        string
	QuoteNumber string
	QuoteTotal  string
	Progress    int
	ActaCount   int
	CorteCount  int
}

// ── Clients ──────────────────────────────────────────────────────────────

type ClientListItem struct {
	ID          string
	Name        string
	NIT         string
	ContactName string
	Phone       string
	City        string
}

type ClientListData struct {
	Header HeaderData
	Items  []ClientListItem
	Total  int
}

type ClientFormData struct {
	Header      HeaderData
	ID          string
	Name        string
	NIT         string
	ContactName string
	Email       string
	Phone       string
	City        string
	Errors      map[string]string
}

// ── Quotes ───────────────────────────────────────────────────────────────

type QuoteListItem struct {
	ID          string
	Number      string
	Status      string
	CreatedDate string
	ItemCount   int
	Total       string
}

type QuoteListData struct {
	Header    HeaderData
	ProjectID string
	Items     []QuoteListItem
	Total     int
}

type QuoteItemRow struct {
	ID          string
	SortOrder   int
	Description string
	Unit        string
	Qty         string
	UnitPrice   string
	LineTotal   string
}

type QuoteViewData struct {
	Header         HeaderData
	ProjectID      string
	ID             string
	Number         string
	Status         string
	CreatedDate    string
	Notes          string
	Items          []QuoteItemRow
	Subtotal       string
	AdminSurcharge string
	Tax            string
	GrandTotal     string
	Editable       bool
	CanAuthorize   bool
}

type QuoteFormData struct {
	Header     HeaderData
	ProjectID  string
	ID         string // empty on the creation form
	Number     string
	Notes      string
	ValidUntil string
	Errors     map[string]string
}

// ── Actas ────────────────────────────────────────────────────────────────

type ActaListItem struct {
	ID           string
	Sequence     int
	DeliveryDate string
	Status       string
	Notes        string
	LineCount    int
}

type ActaListData struct {
	Header    HeaderData
	ProjectID string
	Items     []ActaListItem
	Total     int
}

// ActaScopeRow is one contracted item offered on the acta entry form,
// annotated with what remains undelivered.
type ActaScopeRow struct {
	QuoteItemID string
	Description string
	Unit        string
	Contracted  string
	Executed    string
	Remaining   string
}

type ActaFormData struct {
	Header       HeaderData
	ProjectID    string
	Sequence     int
	DeliveryDate string
	ScopeRows    []ActaScopeRow
	Errors       map[string]string
}

type ActaLineRow struct {
	Description string
	Unit        string
	Qty         string
	FromScope   bool
}

type ActaViewData struct {
	Header       HeaderData
	ProjectID    string
	ID           string
	Sequence     int
	DeliveryDate string
	Status       string
	Notes        string
	Lines        []ActaLineRow
}

// ── Cortes ───────────────────────────────────────────────────────────────

type CorteListItem struct {
	ID          string
	Number      string
	Status      string
	CreatedDate string
	Total       string
}

type CorteListData struct {
	Header    HeaderData
	ProjectID string
	Items     []CorteListItem
	Total     int
}

// CorteActaOption is an uncut acta selectable for a new corte.
type CorteActaOption struct {
	ID           string
	Sequence     int
	DeliveryDate string
	LineCount    int
}

type CorteFormData struct {
	Header    HeaderData
	ProjectID string
	Actas     []CorteActaOption
	Errors    map[string]string
}

type CorteItemRow struct {
	Description string
	Unit        string
	Qty         string
	UnitPrice   string
	LineTotal   string
}

type CorteViewData struct {
	Header         HeaderData
	ProjectID      string
	ID             string
	Number         string
	Status         string
	CreatedDate    string
	ActaSequences  []int
	Items          []CorteItemRow
	Subtotal       string
	AdminSurcharge string
	Tax            string
	GrandTotal     string
	BilledBefore   string
}

// ── Execution ────────────────────────────────────────────────────────────

type ExecutionActaCol struct {
	ID       string
	Sequence int
}

type ExecutionTableRow struct {
	Description   string
	Unit          string
	Contracted    string
	PerActa       []string // aligned with the acta columns
	ExecutedTotal string
	Remaining     string
	OverDelivered string
	IsOver        bool
	IsOrphan      bool
}

type ExecutionPageData struct {
	Header      HeaderData
	ProjectID   string
	ProjectName string
	QuoteNumber string
	Actas       []ExecutionActaCol
	Rows        []ExecutionTableRow
	Orphans     []ExecutionTableRow
	Progress    int
}
