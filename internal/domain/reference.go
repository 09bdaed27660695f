package domain

// ReferenceType identifies the kind of external entity a task is attached to.
type ReferenceType string

const (
	ReferenceTypeOrder  ReferenceType = "ORDER"
	ReferenceTypeEntity ReferenceType = "ENTITY"
)

// IsValid checks if the reference type is one of the allowed values.
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceTypeOrder, ReferenceTypeEntity:
		return true
	default:
		return false
	}
}

// TaskKind identifies the nature of the work a task represents.
type TaskKind string

const (
	TaskKindCreateInvoice               TaskKind = "CREATE_INVOICE"
	TaskKindArrangePickup               TaskKind = "ARRANGE_PICKUP"
	TaskKindCollectPayment              TaskKind = "COLLECT_PAYMENT"
	TaskKindAssignCustomerToSalesPerson TaskKind = "ASSIGN_CUSTOMER_TO_SALES_PERSON"
)

// IsValid checks if the task kind is one of the allowed values.
func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindCreateInvoice, TaskKindArrangePickup, TaskKindCollectPayment,
		TaskKindAssignCustomerToSalesPerson:
		return true
	default:
		return false
	}
}
