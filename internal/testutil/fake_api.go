package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
)

// FakeExpense is the wire shape the fake service stores and serves.
type FakeExpense struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	OwnerID     int64   `json:"owner_id"`
}

// FakeBudget is the wire shape the fake service stores and serves.
type FakeBudget struct {
	ID       int64   `json:"id"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	OwnerID  int64   `json:"owner_id"`
}

// FakeUser is the profile payload the fake service serves.
type FakeUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// FakeAPI is an in-process stand-in for the remote expense tracker service.
// It speaks the same wire contract: form-encoded login, JSON bodies with a
// "detail" field on errors, bearer-token auth on everything else.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	Email    string
	Password string
	Token    string
	User     FakeUser
	Expenses []FakeExpense
	Budgets  []FakeBudget
	ResetKey string
	CSV      []byte
	nextID   int64

	// LoginHook runs inside the login handler after the issued token has
	// been read but before the response is written; tests use it to stall
	// selected requests.
	LoginHook func(username string)
	// ExpenseHook runs at the top of the expense list handler.
	ExpenseHook func()
}

// NewFakeAPI starts a fake service accepting the given credentials and
// issuing the given token.
func NewFakeAPI(email, password, token string) *FakeAPI {
	f := &FakeAPI{
		Email:    email,
		Password: password,
		Token:    token,
		User: FakeUser{
			ID:        1,
			Email:     email,
			FullName:  "Test User",
			IsActive:  true,
			CreatedAt: "2024-01-01T00:00:00",
		},
		ResetKey: "ABC123",
		CSV:      []byte("Date,Description,Category,Amount\n"),
		nextID:   100,
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/login", f.handleLogin)
	e.POST("/register", f.handleRegister)
	e.POST("/password-reset/request", f.handleResetRequest)
	e.POST("/password-reset/verify", f.handleResetVerify)

	authed := e.Group("", f.requireToken)
	authed.GET("/users/profile", f.handleProfile)
	authed.PUT("/users/profile", f.handleProfileUpdate)
	authed.PUT("/users/change-password", f.handleChangePassword)
	authed.GET("/expenses", f.handleListExpenses)
	authed.POST("/expenses", f.handleCreateExpense)
	authed.GET("/expenses/summary", f.handleSummary)
	authed.GET("/expenses/export/csv", f.handleExportCSV)
	authed.GET("/expenses/:id", f.handleGetExpense)
	authed.PUT("/expenses/:id", f.handleUpdateExpense)
	authed.DELETE("/expenses/:id", f.handleDeleteExpense)
	authed.GET("/budgets", f.handleListBudgets)
	authed.POST("/budgets", f.handleCreateBudget)
	authed.PUT("/budgets/:id", f.handleUpdateBudget)
	authed.DELETE("/budgets/:id", f.handleDeleteBudget)

	f.Server = httptest.NewServer(e)
	return f
}

// Close shuts the fake service down.
func (f *FakeAPI) Close() {
	f.Server.Close()
}

// URL returns the fake service's base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// SetToken swaps the token the service issues and accepts.
func (f *FakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = token
}

// SeedExpense adds an expense and returns its assigned ID.
func (f *FakeAPI) SeedExpense(description string, amount float64, category, date string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.Expenses = append(f.Expenses, FakeExpense{
		ID:          f.nextID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		OwnerID:     1,
	})
	return f.nextID
}

// SeedBudget adds a budget and returns its assigned ID.
func (f *FakeAPI) SeedBudget(month, year int, amount float64, category string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.Budgets = append(f.Budgets, FakeBudget{
		ID:       f.nextID,
		Month:    month,
		Year:     year,
		Amount:   amount,
		Category: category,
		OwnerID:  1,
	})
	return f.nextID
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func (f *FakeAPI) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		f.mu.Lock()
		token := f.Token
		f.mu.Unlock()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if token == "" || header != "Bearer "+token {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		return next(c)
	}
}

func (f *FakeAPI) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	f.mu.Lock()
	ok := username == f.Email && password == f.Password
	token := f.Token
	f.mu.Unlock()

	if f.LoginHook != nil {
		f.LoginHook(username)
	}

	if !ok {
		return detail(c, http.StatusUnauthorized, "Incorrect email or password")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (f *FakeAPI) handleRegister(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Email == f.Email {
		return detail(c, http.StatusBadRequest, "Email already registered")
	}
	return c.JSON(http.StatusOK, FakeUser{
		ID:        2,
		Email:     req.Email,
		FullName:  req.FullName,
		IsActive:  true,
		CreatedAt: "2024-01-01T00:00:00",
	})
}

func (f *FakeAPI) handleResetRequest(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Reset key sent"})
}

func (f *FakeAPI) handleResetVerify(c echo.Context) error {
	var req struct {
		Email       string `json:"email"`
		ResetKey    string `json:"reset_key"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.ToUpper(req.ResetKey) != f.ResetKey {
		return detail(c, http.StatusBadRequest, "Invalid reset key")
	}
	f.Password = req.NewPassword
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

func (f *FakeAPI) handleProfile(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return c.JSON(http.StatusOK, f.User)
}

func (f *FakeAPI) handleProfileUpdate(c echo.Context) error {
	var req struct {
		FullName *string `json:"full_name"`
		Email    *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req.FullName != nil {
		f.User.FullName = *req.FullName
	}
	if req.Email != nil {
		f.User.Email = *req.Email
	}
	return c.JSON(http.StatusOK, f.User)
}

func (f *FakeAPI) handleChangePassword(c echo.Context) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req.CurrentPassword != f.Password {
		return detail(c, http.StatusBadRequest, "Current password is incorrect")
	}
	f.Password = req.NewPassword
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

func (f *FakeAPI) handleListExpenses(c echo.Context) error {
	if f.ExpenseHook != nil {
		f.ExpenseHook()
	}

	category := c.QueryParam("category")
	month := c.QueryParam("month")

	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]FakeExpense, 0)
	for _, expense := range f.Expenses {
		if category != "" && expense.Category != category {
			continue
		}
		// Month filter matches the month across every year, like the
		// real service.
		if month != "" && (len(expense.Date) < 7 || expense.Date[5:7] != monthPad(month)) {
			continue
		}
		result = append(result, expense)
	}
	return c.JSON(http.StatusOK, result)
}

func monthPad(m string) string {
	if len(m) == 1 {
		return "0" + m
	}
	return m
}

func (f *FakeAPI) handleCreateExpense(c echo.Context) error {
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	expense := FakeExpense{
		ID:          f.nextID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        "2024-03-10T12:00:00",
		OwnerID:     1,
	}
	f.Expenses = append(f.Expenses, expense)
	return c.JSON(http.StatusOK, expense)
}

func (f *FakeAPI) handleGetExpense(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, expense := range f.Expenses {
		if expense.ID == id {
			return c.JSON(http.StatusOK, expense)
		}
	}
	return detail(c, http.StatusNotFound, "Expense not found")
}

func (f *FakeAPI) handleUpdateExpense(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Expenses {
		if f.Expenses[i].ID == id {
			f.Expenses[i].Description = req.Description
			f.Expenses[i].Amount = req.Amount
			f.Expenses[i].Category = req.Category
			return c.JSON(http.StatusOK, f.Expenses[i])
		}
	}
	return detail(c, http.StatusNotFound, "Expense not found")
}

func (f *FakeAPI) handleDeleteExpense(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Expenses {
		if f.Expenses[i].ID == id {
			f.Expenses = append(f.Expenses[:i], f.Expenses[i+1:]...)
			return c.JSON(http.StatusOK, map[string]string{"message": "Expense deleted"})
		}
	}
	return detail(c, http.StatusNotFound, "Expense not found")
}

func (f *FakeAPI) handleSummary(c echo.Context) error {
	month := c.QueryParam("month")

	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0.0
	count := 0
	breakdown := make(map[string]float64)
	for _, expense := range f.Expenses {
		if month != "" && (len(expense.Date) < 7 || expense.Date[5:7] != monthPad(month)) {
			continue
		}
		total += expense.Amount
		count++
		breakdown[expense.Category] += expense.Amount
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_expenses":     total,
		"total_count":        count,
		"category_breakdown": breakdown,
	})
}

func (f *FakeAPI) handleExportCSV(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return c.Blob(http.StatusOK, "text/csv", f.CSV)
}

func (f *FakeAPI) handleListBudgets(c echo.Context) error {
	month := c.QueryParam("month")
	year := c.QueryParam("year")

	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]FakeBudget, 0)
	for _, budget := range f.Budgets {
		if month != "" && strconv.Itoa(budget.Month) != month {
			continue
		}
		if year != "" && strconv.Itoa(budget.Year) != year {
			continue
		}
		result = append(result, budget)
	}
	return c.JSON(http.StatusOK, result)
}

func (f *FakeAPI) handleCreateBudget(c echo.Context) error {
	var req struct {
		Month    int     `json:"month"`
		Year     int     `json:"year"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	budget := FakeBudget{
		ID:       f.nextID,
		Month:    req.Month,
		Year:     req.Year,
		Amount:   req.Amount,
		Category: req.Category,
		OwnerID:  1,
	}
	f.Budgets = append(f.Budgets, budget)
	return c.JSON(http.StatusOK, budget)
}

func (f *FakeAPI) handleUpdateBudget(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req struct {
		Month    int     `json:"month"`
		Year     int     `json:"year"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid payload")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Budgets {
		if f.Budgets[i].ID == id {
			f.Budgets[i].Month = req.Month
			f.Budgets[i].Year = req.Year
			f.Budgets[i].Amount = req.Amount
			f.Budgets[i].Category = req.Category
			return c.JSON(http.StatusOK, f.Budgets[i])
		}
	}
	return detail(c, http.StatusNotFound, "Budget not found")
}

func (f *FakeAPI) handleDeleteBudget(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Budgets {
		if f.Budgets[i].ID == id {
			f.Budgets = append(f.Budgets[:i], f.Budgets[i+1:]...)
			return c.JSON(http.StatusOK, map[string]string{"message": "Budget deleted"})
		}
	}
	return detail(c, http.StatusNotFound, "Budget not found")
}
