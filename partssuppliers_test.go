package relcalc

// This file contains example data for a suppliers, parts & orders database, using
// the example provided by C. J. Date in his book "Database in Depth" in Figure 1-3.
// It also has the income & payments relations used in the calculus lecture
// notes this package grew out of.

type supplierTup struct {
	SNO    int
	SName  string
	Status int
	City   string
}

type orderTup struct {
	PNO int
	SNO int
	Qty int
}

// suppliers relation, with candidate keys {SNO}
func suppliers() *Relation[supplierTup] {
	return New(
		supplierTup{1, "Smith", 20, "London"},
		supplierTup{2, "Jones", 10, "Paris"},
		supplierTup{3, "Blake", 30, "Paris"},
		supplierTup{4, "Clark", 20, "London"},
		supplierTup{5, "Adams", 30, "Athens"},
	)
}

// orders relation, with candidate keys {PNO, SNO}
func orders() *Relation[orderTup] {
	return New(
		orderTup{1, 1, 300},
		orderTup{1, 2, 200},
		orderTup{1, 3, 400},
		orderTup{1, 4, 200},
		orderTup{1, 5, 100},
		orderTup{1, 6, 100},
		orderTup{2, 1, 300},
		orderTup{2, 2, 400},
		orderTup{3, 2, 200},
		orderTup{4, 2, 200},
		orderTup{4, 4, 300},
		orderTup{4, 5, 400},
	)
}

// income(Date, Sum)
func income() *Relation[[2]int] {
	return New([2]int{1, 5}, [2]int{2, 6}, [2]int{3, 7}, [2]int{4, 8})
}

// payment(Sum, Paid)
func payment() *Relation[[2]int] {
	return New([2]int{5, 1}, [2]int{6, 2}, [2]int{3, 3}, [2]int{2, 4})
}
