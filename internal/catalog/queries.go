package catalog

import (
	"github.com/jonlawlor/relcalc"
	"github.com/jonlawlor/relcalc/att"
	"github.com/jonlawlor/relcalc/internal/facts"
)

// tuple types of the income (bevetel) and payment (befizet) facts

type income struct {
	Date int
	Sum  int
}

type payment struct {
	Sum  int
	Paid int
}

type paidIncome struct {
	Date int
	Sum  int
	Paid int
}

type date struct {
	Date int
}

var queries = []Query{
	{
		Name:        "paid-income",
		Description: "income joined with the payments of the same sum",
		Formula:     "{t | bevetel(t.Date, t.Sum) ∧ ∃u (befizet(u) ∧ u.Sum = t.Sum ∧ u.Paid = t.Paid)}",
		Relations:   []string{"bevetel", "befizet"},
		eval:        paidIncomeQuery,
	},
	{
		Name:        "paid-dates",
		Description: "dates of income that has a payment of the same sum",
		Formula:     "{t | ∃s (bevetel(t.Date, s) ∧ ∃u (befizet(u) ∧ u.Sum = s))}",
		Relations:   []string{"bevetel", "befizet"},
		eval:        paidDatesQuery,
	},
	{
		Name:        "unpaid-income",
		Description: "income without a payment of the same sum",
		Formula:     "{t | bevetel(t) ∧ ¬∃u (befizet(u) ∧ u.Sum = t.Sum)}",
		Relations:   []string{"bevetel", "befizet"},
		eval:        unpaidIncomeQuery,
	},
	{
		Name:        "every-income-paid",
		Description: "whether every income has a payment of the same sum",
		Formula:     "∀t (bevetel(t) → ∃u (befizet(u) ∧ u.Sum = t.Sum))",
		Relations:   []string{"bevetel", "befizet"},
		eval:        everyIncomePaidQuery,
	},
	{
		Name:        "overpaid",
		Description: "payments where more was paid than the sum",
		Formula:     "{t | befizet(t) ∧ t.Paid > t.Sum}",
		Relations:   []string{"befizet"},
		eval:        overpaidQuery,
	},
	{
		Name:        "settled-payment",
		Description: "whether some payment paid exactly its sum",
		Formula:     "∃u (befizet(u) ∧ u.Sum = u.Paid)",
		Relations:   []string{"befizet"},
		eval:        settledPaymentQuery,
	},
}

func incomePayments(b *facts.Base) (*relcalc.Relation[income], *relcalc.Relation[payment], error) {
	inc, err := facts.Typed[income](b, "bevetel")
	if err != nil {
		return nil, nil, err
	}
	pay, err := facts.Typed[payment](b, "befizet")
	if err != nil {
		return nil, nil, err
	}
	return inc, pay, nil
}

// paidIncomes is the join of income and payment on Sum.
func paidIncomes(b *facts.Base, opts Options) (*relcalc.Relation[paidIncome], error) {
	inc, pay, err := incomePayments(b)
	if err != nil {
		return nil, err
	}
	d, err := domain(opts, activeOf(inc), activeOf(pay))
	if err != nil {
		return nil, err
	}
	return relcalc.Query(d, func(t paidIncome) bool {
		return inc.Contains(income{t.Date, t.Sum}) && relcalc.MustAny(d, func(u payment) bool {
			return pay.Contains(u) && u.Sum == t.Sum && u.Paid == t.Paid
		})
	})
}

func paidIncomeQuery(b *facts.Base, opts Options) (*Result, error) {
	r, err := paidIncomes(b, opts)
	if err != nil {
		return nil, err
	}
	return relationResult(r), nil
}

// paidDatesQuery projects paid-income onto its dates.
func paidDatesQuery(b *facts.Base, opts Options) (*Result, error) {
	paid, err := paidIncomes(b, opts)
	if err != nil {
		return nil, err
	}
	r, err := relcalc.Project[date](paid)
	if err != nil {
		return nil, err
	}
	return relationResult(r), nil
}

func unpaidIncomeQuery(b *facts.Base, opts Options) (*Result, error) {
	inc, pay, err := incomePayments(b)
	if err != nil {
		return nil, err
	}
	d, err := domain(opts, activeOf(inc), activeOf(pay))
	if err != nil {
		return nil, err
	}
	r, err := relcalc.Query(d, func(t income) bool {
		return inc.Contains(t) && !relcalc.MustAny(d, func(u payment) bool {
			return pay.Contains(u) && u.Sum == t.Sum
		})
	})
	if err != nil {
		return nil, err
	}
	return relationResult(r), nil
}

func everyIncomePaidQuery(b *facts.Base, opts Options) (*Result, error) {
	inc, pay, err := incomePayments(b)
	if err != nil {
		return nil, err
	}
	d, err := domain(opts, activeOf(inc), activeOf(pay))
	if err != nil {
		return nil, err
	}
	holds, err := relcalc.All[income](d, relcalc.Member(inc).Implies(func(t income) bool {
		return relcalc.MustAny(d, func(u payment) bool {
			return pay.Contains(u) && u.Sum == t.Sum
		})
	}))
	if err != nil {
		return nil, err
	}
	return boolResult(holds), nil
}

func overpaidQuery(b *facts.Base, opts Options) (*Result, error) {
	pay, err := facts.Typed[payment](b, "befizet")
	if err != nil {
		return nil, err
	}
	p, err := relcalc.Where[payment](att.Attribute("Paid").GT(att.Attribute("Sum")))
	if err != nil {
		return nil, err
	}
	d, err := domain(opts, activeOf(pay))
	if err != nil {
		return nil, err
	}
	r, err := relcalc.Query[payment](d, relcalc.Member(pay).And(p))
	if err != nil {
		return nil, err
	}
	return relationResult(r), nil
}

func settledPaymentQuery(b *facts.Base, opts Options) (*Result, error) {
	pay, err := facts.Typed[payment](b, "befizet")
	if err != nil {
		return nil, err
	}
	d, err := domain(opts, activeOf(pay))
	if err != nil {
		return nil, err
	}
	holds, err := relcalc.Any(d, func(u payment) bool {
		return pay.Contains(u) && u.Sum == u.Paid
	})
	if err != nil {
		return nil, err
	}
	return boolResult(holds), nil
}
