package handlers

type CredentialsRequest struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

type UserResponse struct {
	Id       int    `json:"id"`
	Username string `json:"nombre_usuario"`
	FullName string `json:"nombre_completo"`
	Admin    bool   `json:"admin"`
}

type CreateUserRequest struct {
	Username        string `json:"nombre_usuario"`
	FullName        string `json:"nombre_completo"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirmacion"`
}

type ChangePasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirmacion"`
}

type ProductRequest struct {
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
}

type ProductResponse struct {
	Code        string `json:"codigo"`
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
	LowStock    bool   `json:"stock_bajo"`
}

type UpsertResult struct {
	Product ProductResponse `json:"producto"`
	Created bool            `json:"creado"`
}

// AlertResponse is a low-stock row with its severity band: "Crítico" below
// 20 units, otherwise "Bajo".
type AlertResponse struct {
	Code        string `json:"codigo"`
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
	State       string `json:"estado"`
}

type DashboardSummary struct {
	TotalProducts int `json:"total_productos"`
	TotalUnits    int `json:"total_unidades"`
	LowStockCount int `json:"productos_stock_bajo"`
	StockLowLimit int `json:"limite_stock_bajo"`
}

type ImportProductsResult struct {
	Added   int                      `json:"agregados"`
	Updated int                      `json:"actualizados"`
	Errors  []ProductValidationError `json:"errores,omitempty"`
}

type UpdateSettingsRequest struct {
	StockLowLimit *int    `json:"stock_low_limit,omitempty"`
	Theme         *string `json:"theme,omitempty"`
}

type HistoryResponse struct {
	Content string `json:"contenido"`
}
