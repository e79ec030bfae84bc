package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GenerateContractPDFUseCase struct {
	contractRepo  port.ContractRepositoryPort
	propertyRepo  port.PropertyRepositoryPort
	publicBaseURL string
}

func NewGenerateContractPDFUseCase(contractRepo port.ContractRepositoryPort, propertyRepo port.PropertyRepositoryPort, publicBaseURL string) *GenerateContractPDFUseCase {
	return &GenerateContractPDFUseCase{
		contractRepo:  contractRepo,
		propertyRepo:  propertyRepo,
		publicBaseURL: publicBaseURL,
	}
}

// Execute renders the tenancy summary document and records its download URL
// on the contract. The document is rendered fresh on every call, so a
// re-download after an edit always reflects current terms.
func (uc *GenerateContractPDFUseCase) Execute(ctx context.Context, contractID uuid.UUID) (*domain.Contract, []byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GenerateContractPDF", "contract_id": contractID.String()})
	ucLogger.Info("Use case started: rendering tenancy document", nil)

	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, nil, domain.ErrContractNotFound
	}

	property, err := uc.propertyRepo.FindByID(ctx, contract.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, nil, fmt.Errorf("internal server error: %w", err)
	}

	doc := renderTenancyDocument(contract, property)

	if contract.PdfURL == "" {
		contract.PdfURL = fmt.Sprintf("%s/api/contracts/%s/download", uc.publicBaseURL, contract.ID)
		if err := uc.contractRepo.Update(ctx, contract); err != nil {
			ucLogger.Error("Repository failed to store document URL", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}
	}

	ucLogger.Info("Use case finished: tenancy document rendered", port.Fields{"bytes": len(doc)})
	return contract, doc, nil
}

func renderTenancyDocument(contract *domain.Contract, property *domain.Property) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TENANCY CONTRACT %s\n", contract.ID)
	fmt.Fprintf(&buf, "Status: %s\n\n", contract.Status)
	if property != nil {
		fmt.Fprintf(&buf, "Property: %s\n", property.Title)
		fmt.Fprintf(&buf, "Building: %s, Unit %s, %s\n", property.Building, property.Unit, property.Area)
	} else {
		fmt.Fprintf(&buf, "Property: %s\n", contract.PropertyTitle)
	}
	fmt.Fprintf(&buf, "\nTenant: %s\n", contract.TenantName)
	fmt.Fprintf(&buf, "Email: %s\n", contract.TenantEmail)
	fmt.Fprintf(&buf, "Phone: %s\n\n", contract.TenantPhone)
	fmt.Fprintf(&buf, "Term: %s to %s\n", contract.StartDate.Format("2006-01-02"), contract.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&buf, "Annual rent: AED %d\n", contract.Rent)
	fmt.Fprintf(&buf, "Cheques: %d\n", contract.Cheques)
	fmt.Fprintf(&buf, "Security deposit: AED %d\n", contract.Deposit)
	if contract.SignedAt != nil {
		fmt.Fprintf(&buf, "\nSigned at: %s\n", contract.SignedAt.Format(time.RFC3339))
	}
	return buf.Bytes()
}
