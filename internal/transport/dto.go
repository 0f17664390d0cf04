package transport

type AssignPlanRequest struct {
	UserID        uint   `json:"user_id"`
	PlanID        uint   `json:"plan_id"`
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference,omitempty"`
}

type AssignPlanResponse struct {
	StudentPlanID uint   `json:"student_plan_id"`
	UserID        uint   `json:"user_id"`
	PlanID        uint   `json:"plan_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

type CreateOrderRequest struct {
	MealType string   `json:"meal_type"`
	Credits  int      `json:"credits"`
	TableQR  string   `json:"table_qr"`
	Items    []string `json:"items"`
}

type CreateOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	Status    string `json:"status"`
	Remaining int    `json:"remaining"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

type RecordTransactionRequest struct {
	UserID      uint    `json:"user_id"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	Reference   string  `json:"reference,omitempty"`
	OrderID     *uint   `json:"order_id,omitempty"`
}

type RechargeRequest struct {
	UserID      uint    `json:"user_id"`
	Credits     int     `json:"credits"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	Reference   string  `json:"reference,omitempty"`
}
