package googlesheets

// SheetLayout describes which spreadsheet columns hold the shortage
// fields. The default matches the purchasing department's template:
// work order, part number, part name, specification, supplier, quantity.
type SheetLayout struct {
	WorkOrderCol     int
	PartNumberCol    int
	PartNameCol      int
	SpecificationCol int
	SupplierCol      int
	QuantityCol      int
	HeaderRows       int
}

func DefaultLayout() SheetLayout {
	return SheetLayout{
		WorkOrderCol:     0,
		PartNumberCol:    1,
		PartNameCol:      2,
		SpecificationCol: 3,
		SupplierCol:      4,
		QuantityCol:      5,
		HeaderRows:       1,
	}
}
