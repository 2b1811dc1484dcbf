// Package graph exposes the loan book over GraphQL. Field names follow the
// snake_case wire contract the UI consumes; resolvers delegate to the
// ledger and never touch the store directly.
package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"loanbook/pkg/ledger"
	"loanbook/pkg/models"
)

// NewSchema builds the GraphQL schema over a ledger.
func NewSchema(lgr *ledger.Ledger) (graphql.Schema, error) {
	paymentType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "LoanPayment",
		Description: "An individual loan payment made by a borrower.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Payment).ID.String(), nil
				},
			},
			"loan_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Payment).LoanID.String(), nil
				},
			},
			"payment_date": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d := p.Source.(*models.Payment).PaymentDate
					if d == nil {
						return nil, nil
					}
					return d.String(), nil
				},
			},
			"amount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Payment).Amount.InexactFloat64(), nil
				},
			},
		},
	})

	loanType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "ExistingLoans",
		Description: "An existing loan, including payments and remaining balance.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).Name, nil
				},
			},
			"interest_rate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).InterestRate.InexactFloat64(), nil
				},
			},
			"principal": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).Principal.InexactFloat64(), nil
				},
			},
			"due_date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).DueDate.String(), nil
				},
			},
			"loan_payments": &graphql.Field{
				Type:        graphql.NewList(paymentType),
				Description: "List of loan payments",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).Payments, nil
				},
			},
			"payment_status": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Payment status of the loan",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(*models.LoanView).PaymentStatus), nil
				},
			},
			"remaining_balance": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Float),
				Description: "Remaining loan balance",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.LoanView).RemainingBalance.InexactFloat64(), nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"loans": &graphql.Field{
				Type: graphql.NewList(loanType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					views, _, err := lgr.GetAllLoans()
					return views, err
				},
			},
			"loan": &graphql.Field{
				Type: loanType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uuid.Parse(p.Args["id"].(string))
					if err != nil {
						return nil, fmt.Errorf("invalid loan id: %w", err)
					}
					return lgr.GetLoan(id)
				},
			},
		},
	})

	createLoanType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateLoan",
		Fields: graphql.Fields{
			"loan": &graphql.Field{Type: loanType},
		},
	})

	makePaymentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MakePayment",
		Fields: graphql.Fields{
			"payment": &graphql.Field{Type: paymentType},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"create_loan": &graphql.Field{
				Type: createLoanType,
				Args: graphql.FieldConfigArgument{
					"name":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"interest_rate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"principal":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"due_date":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					dueDate, err := models.ParseDate(p.Args["due_date"].(string))
					if err != nil {
						return nil, err
					}
					loan, err := lgr.CreateLoan(
						p.Args["name"].(string),
						decimal.NewFromFloat(p.Args["interest_rate"].(float64)),
						decimal.NewFromFloat(p.Args["principal"].(float64)),
						dueDate,
					)
					if err != nil {
						return nil, err
					}
					view, err := lgr.GetLoan(loan.ID)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"loan": view}, nil
				},
			},
			"make_payment": &graphql.Field{
				Type: makePaymentType,
				Args: graphql.FieldConfigArgument{
					"loan_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"payment_date": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"amount":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					loanID, err := uuid.Parse(p.Args["loan_id"].(string))
					if err != nil {
						return nil, fmt.Errorf("invalid loan id: %w", err)
					}
					paymentDate, err := models.ParseDate(p.Args["payment_date"].(string))
					if err != nil {
						return nil, err
					}
					payment, err := lgr.RecordPayment(loanID, paymentDate, decimal.NewFromFloat(p.Args["amount"].(float64)))
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"payment": payment}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
