package rest

import (
	"time"

	"dar360-service/internal/core/domain"
)

const dateLayout = "2006-01-02"

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// --- Users ---

type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	ReraBRN *string `json:"rera_brn"`
}

type VerifyReraRequest struct {
	ReraBRN string `json:"rera_brn"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Role           string  `json:"role"`
	Company        string  `json:"company,omitempty"`
	ReraBRN        string  `json:"rera_brn,omitempty"`
	ReraVerifiedAt *string `json:"rera_verified_at,omitempty"`
	Rating         float64 `json:"rating"`
	CreatedAt      string  `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Company:   user.Company,
		ReraBRN:   user.ReraBRN,
		Rating:    user.Rating,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.ReraVerifiedAt != nil {
		verifiedAt := user.ReraVerifiedAt.Format(time.RFC3339)
		resp.ReraVerifiedAt = &verifiedAt
	}
	return resp
}

func toUserResponses(users []*domain.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	return resp
}

// --- Properties ---

type CreatePropertyRequest struct {
	OwnerID  string   `json:"owner_id,omitempty"`
	Title    string   `json:"title"`
	Building string   `json:"building"`
	Unit     string   `json:"unit"`
	Area     string   `json:"area"`
	Type     string   `json:"type"`
	Beds     int      `json:"beds"`
	Baths    int      `json:"baths"`
	Sqft     int      `json:"sqft"`
	Rent     int64    `json:"rent"`
	Cheques  int      `json:"cheques"`
	Deposit  int64    `json:"deposit"`
	Images   []string `json:"images"`
}

type UpdatePropertyRequest struct {
	Title    *string  `json:"title"`
	Building *string  `json:"building"`
	Unit     *string  `json:"unit"`
	Area     *string  `json:"area"`
	Type     *string  `json:"type"`
	Beds     *int     `json:"beds"`
	Baths    *int     `json:"baths"`
	Sqft     *int     `json:"sqft"`
	Rent     *int64   `json:"rent"`
	Cheques  *int     `json:"cheques"`
	Deposit  *int64   `json:"deposit"`
	Status   *string  `json:"status"`
	Images   []string `json:"images"`
}

type AddImagesRequest struct {
	Images []string `json:"images"`
}

type ShareResponse struct {
	URL string `json:"url"`
}

type PropertyResponse struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"owner_id"`
	AgentID       *string  `json:"agent_id,omitempty"`
	Title         string   `json:"title"`
	Building      string   `json:"building"`
	Unit          string   `json:"unit"`
	Area          string   `json:"area"`
	Type          string   `json:"type"`
	Beds          int      `json:"beds"`
	Baths         int      `json:"baths"`
	Sqft          int      `json:"sqft"`
	Rent          int64    `json:"rent"`
	Cheques       int      `json:"cheques"`
	Deposit       int64    `json:"deposit"`
	Status        string   `json:"status"`
	Images        []string `json:"images"`
	ViewingsCount int      `json:"viewings_count"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func toPropertyResponse(property *domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:            property.ID.String(),
		OwnerID:       property.OwnerID.String(),
		Title:         property.Title,
		Building:      property.Building,
		Unit:          property.Unit,
		Area:          property.Area,
		Type:          string(property.Type),
		Beds:          property.Beds,
		Baths:         property.Baths,
		Sqft:          property.Sqft,
		Rent:          property.Rent,
		Cheques:       property.Cheques,
		Deposit:       property.Deposit,
		Status:        string(property.Status),
		Images:        property.Images,
		ViewingsCount: property.ViewingsCount,
		CreatedAt:     property.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     property.UpdatedAt.Format(time.RFC3339),
	}
	if property.AgentID != nil {
		agentID := property.AgentID.String()
		resp.AgentID = &agentID
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	return resp
}

func toPropertyResponses(properties []*domain.Property) []PropertyResponse {
	resp := make([]PropertyResponse, 0, len(properties))
	for _, property := range properties {
		resp = append(resp, toPropertyResponse(property))
	}
	return resp
}

// --- Viewings ---

type ScheduleViewingRequest struct {
	PropertyID  string `json:"property_id"`
	TenantName  string `json:"tenant_name"`
	TenantPhone string `json:"tenant_phone"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
}

type UpdateViewingRequest struct {
	Date     *string `json:"date"`
	TimeSlot *string `json:"time_slot"`
	Notes    *string `json:"notes"`
}

type LogOutcomeRequest struct {
	Outcome string `json:"outcome"`
	Notes   string `json:"notes"`
}

type ViewingResponse struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	PropertyTitle string  `json:"property_title"`
	PropertyArea  string  `json:"property_area"`
	TenantName    string  `json:"tenant_name"`
	TenantPhone   string  `json:"tenant_phone"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"time_slot"`
	Status        string  `json:"status"`
	Outcome       *string `json:"outcome,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CancelledAt   *string `json:"cancelled_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func toViewingResponse(viewing *domain.Viewing) ViewingResponse {
	resp := ViewingResponse{
		ID:            viewing.ID.String(),
		PropertyID:    viewing.PropertyID.String(),
		PropertyTitle: viewing.PropertyTitle,
		PropertyArea:  viewing.PropertyArea,
		TenantName:    viewing.TenantName,
		TenantPhone:   viewing.TenantPhone,
		Date:          viewing.Date.Format(dateLayout),
		TimeSlot:      viewing.TimeSlot,
		Notes:         viewing.Notes,
		CreatedAt:     viewing.CreatedAt.Format(time.RFC3339),
	}
	switch {
	case viewing.CancelledAt != nil:
		resp.Status = "cancelled"
		cancelledAt := viewing.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	case viewing.IsUpcoming(time.Now()):
		resp.Status = "upcoming"
	default:
		resp.Status = "past"
	}
	if viewing.Outcome != nil {
		outcome := string(*viewing.Outcome)
		resp.Outcome = &outcome
	}
	return resp
}

func toViewingResponses(viewings []*domain.Viewing) []ViewingResponse {
	resp := make([]ViewingResponse, 0, len(viewings))
	for _, viewing := range viewings {
		resp = append(resp, toViewingResponse(viewing))
	}
	return resp
}

// --- Contracts ---

type CreateContractRequest struct {
	PropertyID  string `json:"property_id"`
	TenantName  string `json:"tenant_name"`
	TenantEmail string `json:"tenant_email"`
	TenantPhone string `json:"tenant_phone"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Rent        int64  `json:"rent,omitempty"`
	Cheques     int    `json:"cheques,omitempty"`
	Deposit     int64  `json:"deposit,omitempty"`
}

type UpdateContractRequest struct {
	TenantName  *string `json:"tenant_name"`
	TenantEmail *string `json:"tenant_email"`
	TenantPhone *string `json:"tenant_phone"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Rent        *int64  `json:"rent"`
	Cheques     *int    `json:"cheques"`
	Deposit     *int64  `json:"deposit"`
	Status      *string `json:"status"`
}

type VerifyOTPRequest struct {
	Code string `json:"code"`
}

type SignatureSessionResponse struct {
	ContractID string `json:"contract_id"`
	ExpiresAt  string `json:"expires_at"`
}

type ContractResponse struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	PropertyTitle string  `json:"property_title"`
	ApplicationID *string `json:"application_id,omitempty"`
	AgentID       *string `json:"agent_id,omitempty"`
	TenantName    string  `json:"tenant_name"`
	TenantEmail   string  `json:"tenant_email"`
	TenantPhone   string  `json:"tenant_phone"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Rent          int64   `json:"rent"`
	Cheques       int     `json:"cheques"`
	Deposit       int64   `json:"deposit"`
	Status        string  `json:"status"`
	SignedAt      *string `json:"signed_at,omitempty"`
	PdfURL        string  `json:"pdf_url,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func toContractResponse(contract *domain.Contract) ContractResponse {
	resp := ContractResponse{
		ID:            contract.ID.String(),
		PropertyID:    contract.PropertyID.String(),
		PropertyTitle: contract.PropertyTitle,
		TenantName:    contract.TenantName,
		TenantEmail:   contract.TenantEmail,
		TenantPhone:   contract.TenantPhone,
		StartDate:     contract.StartDate.Format(dateLayout),
		EndDate:       contract.EndDate.Format(dateLayout),
		Rent:          contract.Rent,
		Cheques:       contract.Cheques,
		Deposit:       contract.Deposit,
		Status:        string(contract.Status),
		PdfURL:        contract.PdfURL,
		CreatedAt:     contract.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     contract.UpdatedAt.Format(time.RFC3339),
	}
	if contract.ApplicationID != nil {
		applicationID := contract.ApplicationID.String()
		resp.ApplicationID = &applicationID
	}
	if contract.AgentID != nil {
		agentID := contract.AgentID.String()
		resp.AgentID = &agentID
	}
	if contract.SignedAt != nil {
		signedAt := contract.SignedAt.Format(time.RFC3339)
		resp.SignedAt = &signedAt
	}
	return resp
}

func toContractResponses(contracts []*domain.Contract) []ContractResponse {
	resp := make([]ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		resp = append(resp, toContractResponse(contract))
	}
	return resp
}

// --- Applications ---

type SubmitApplicationRequest struct {
	PropertyID string `json:"property_id"`
	Notes      string `json:"notes"`
}

type ApplicationResponse struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	TenantID      string  `json:"tenant_id"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	AppliedAt     string  `json:"applied_at"`
	DecidedAt     *string `json:"decided_at,omitempty"`
	PropertyTitle string  `json:"property_title"`
	PropertyArea  string  `json:"property_area"`
	PropertyImage string  `json:"property_image,omitempty"`
	Rent          int64   `json:"rent"`
	AgentName     string  `json:"agent_name,omitempty"`
	AgentPhone    string  `json:"agent_phone,omitempty"`
}

func toApplicationResponse(application *domain.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            application.ID.String(),
		PropertyID:    application.PropertyID.String(),
		TenantID:      application.TenantID.String(),
		Status:        string(application.Status),
		Notes:         application.Notes,
		AppliedAt:     application.AppliedAt.Format(time.RFC3339),
		PropertyTitle: application.PropertyTitle,
		PropertyArea:  application.PropertyArea,
		PropertyImage: application.PropertyImage,
		Rent:          application.Rent,
		AgentName:     application.AgentName,
		AgentPhone:    application.AgentPhone,
	}
	if application.DecidedAt != nil {
		decidedAt := application.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func toApplicationResponses(applications []*domain.Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		resp = append(resp, toApplicationResponse(application))
	}
	return resp
}

// ApplicationDecisionResponse returns the decided application together with
// the draft contract an approval creates.
type ApplicationDecisionResponse struct {
	Application ApplicationResponse `json:"application"`
	Contract    *ContractResponse   `json:"contract,omitempty"`
}

// --- Maintenance ---

type CreateMaintenanceRequestBody struct {
	PropertyID  string   `json:"property_id"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type UpdateMaintenanceRequestBody struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
	Cost   *int64  `json:"cost"`
}

type MaintenanceResponse struct {
	ID               string   `json:"id"`
	PropertyID       string   `json:"property_id"`
	TenantID         string   `json:"tenant_id"`
	Category         string   `json:"category"`
	Priority         string   `json:"priority"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Status           string   `json:"status"`
	Notes            string   `json:"notes,omitempty"`
	Images           []string `json:"images"`
	Cost             *int64   `json:"cost,omitempty"`
	ResolvedAt       *string  `json:"resolved_at,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	PropertyBuilding string   `json:"property_building"`
	PropertyUnit     string   `json:"property_unit"`
	PropertyArea     string   `json:"property_area"`
	TenantName       string   `json:"tenant_name"`
	TenantPhone      string   `json:"tenant_phone"`
}

func toMaintenanceResponse(request *domain.MaintenanceRequest) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:               request.ID.String(),
		PropertyID:       request.PropertyID.String(),
		TenantID:         request.TenantID.String(),
		Category:         string(request.Category),
		Priority:         string(request.Priority),
		Title:            request.Title,
		Description:      request.Description,
		Status:           string(request.Status),
		Notes:            request.Notes,
		Images:           request.Images,
		Cost:             request.Cost,
		CreatedAt:        request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        request.UpdatedAt.Format(time.RFC3339),
		PropertyBuilding: request.PropertyBuilding,
		PropertyUnit:     request.PropertyUnit,
		PropertyArea:     request.PropertyArea,
		TenantName:       request.TenantName,
		TenantPhone:      request.TenantPhone,
	}
	if request.ResolvedAt != nil {
		resolvedAt := request.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolvedAt
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	return resp
}

func toMaintenanceResponses(requests []*domain.MaintenanceRequest) []MaintenanceResponse {
	resp := make([]MaintenanceResponse, 0, len(requests))
	for _, request := range requests {
		resp = append(resp, toMaintenanceResponse(request))
	}
	return resp
}

// --- Commissions ---

type UpdateCommissionRequest struct {
	Status string `json:"status"`
}

type CommissionResponse struct {
	ID                  string  `json:"id"`
	ContractID          string  `json:"contract_id"`
	AgentID             string  `json:"agent_id"`
	DealValue           int64   `json:"deal_value"`
	CommissionRate      string  `json:"commission_rate"`
	CommissionAmount    string  `json:"commission_amount"`
	Status              string  `json:"status"`
	ClosedDate          string  `json:"closed_date"`
	ExpectedPaymentDate *string `json:"expected_payment_date,omitempty"`
	PaidDate            *string `json:"paid_date,omitempty"`
	PropertyTitle       string  `json:"property_title"`
	PropertyArea        string  `json:"property_area"`
	TenantName          string  `json:"tenant_name"`
}

func toCommissionResponse(commission *domain.Commission) CommissionResponse {
	resp := CommissionResponse{
		ID:               commission.ID.String(),
		ContractID:       commission.ContractID.String(),
		AgentID:          commission.AgentID.String(),
		DealValue:        commission.DealValue,
		CommissionRate:   commission.CommissionRate.String(),
		CommissionAmount: commission.CommissionAmount.String(),
		Status:           string(commission.Status),
		ClosedDate:       commission.ClosedDate.Format(dateLayout),
		PropertyTitle:    commission.PropertyTitle,
		PropertyArea:     commission.PropertyArea,
		TenantName:       commission.TenantName,
	}
	if commission.ExpectedPaymentDate != nil {
		expected := commission.ExpectedPaymentDate.Format(dateLayout)
		resp.ExpectedPaymentDate = &expected
	}
	if commission.PaidDate != nil {
		paid := commission.PaidDate.Format(dateLayout)
		resp.PaidDate = &paid
	}
	return resp
}

func toCommissionResponses(commissions []*domain.Commission) []CommissionResponse {
	resp := make([]CommissionResponse, 0, len(commissions))
	for _, commission := range commissions {
		resp = append(resp, toCommissionResponse(commission))
	}
	return resp
}

// --- Payments ---

type MarkPaidRequest struct {
	Method string `json:"method"`
}

type ChequeResponse struct {
	ID           string  `json:"id"`
	ContractID   string  `json:"contract_id"`
	ChequeNumber int     `json:"cheque_number"`
	TotalCheques int     `json:"total_cheques"`
	Amount       int64   `json:"amount"`
	DueDate      string  `json:"due_date"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
	PaidMethod   string  `json:"paid_method,omitempty"`
}

func toChequeResponse(cheque *domain.ChequePayment) ChequeResponse {
	resp := ChequeResponse{
		ID:           cheque.ID.String(),
		ContractID:   cheque.ContractID.String(),
		ChequeNumber: cheque.ChequeNumber,
		TotalCheques: cheque.TotalCheques,
		Amount:       cheque.Amount,
		DueDate:      cheque.DueDate.Format(dateLayout),
		Status:       string(cheque.Status(time.Now())),
		PaidMethod:   cheque.PaidMethod,
	}
	if cheque.PaidAt != nil {
		paidAt := cheque.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func toChequeResponses(cheques []*domain.ChequePayment) []ChequeResponse {
	resp := make([]ChequeResponse, 0, len(cheques))
	for _, cheque := range cheques {
		resp = append(resp, toChequeResponse(cheque))
	}
	return resp
}

// --- Saved properties ---

type SavePropertyRequest struct {
	PropertyID string `json:"property_id"`
}

type SavedIDsResponse struct {
	PropertyIDs []string `json:"property_ids"`
}
