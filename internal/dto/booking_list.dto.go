package dto

type BookingListDTO struct {
	ID           uint    `json:"id"`
	Reference    string  `json:"reference"`
	BookingDate  string  `json:"booking_date"`
	BookingTime  string  `json:"booking_time"`
	Status       string  `json:"status"`
	ClientName   string  `json:"client_name"`
	ClientPhone  string  `json:"client_phone"`
	ServiceName  string  `json:"service_name"`
	EmployeeName string  `json:"employee_name"`
	Price        float64 `json:"price"`
	IsPrepaid    bool    `json:"is_prepaid"`
}
