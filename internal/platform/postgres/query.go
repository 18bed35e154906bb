package postgres

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const (
	dialectPostgres = "postgres"

	tableBooks        = "books"
	tableTransactions = "transactions"

	colBookID     = "book_id"
	colTitle      = "title"
	colAuthor     = "author"
	colGenre      = "genre"
	colQuantity   = "quantity"
	colLoanID     = "transaction_id"
	colUserID     = "user_id"
	colBorrowDate = "borrow_date"
	colReturnDate = "return_date"
	colLateFee    = "late_fee"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern that uses the
// default backslash escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func selectBooks() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(colBookID, colTitle, colAuthor, colGenre, colQuantity).
		Order(goqu.I(colBookID).Asc()).
		Prepared(true)
}

// buildSearchBooksQuery matches query as a case-insensitive substring of
// title, author or genre. An empty query selects every book.
func buildSearchBooksQuery(query string) (string, []interface{}, error) {
	stmt := selectBooks()
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		stmt = stmt.Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colAuthor).ILike(pattern),
			goqu.C(colGenre).ILike(pattern),
		))
	}
	return stmt.ToSQL()
}

func buildAvailableBooksQuery() (string, []interface{}, error) {
	return selectBooks().Where(goqu.C(colQuantity).Gt(0)).ToSQL()
}

// buildOpenLoansQuery lists a user's open loans with the borrowed title.
func buildOpenLoansQuery(userID int64) (string, []interface{}, error) {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T(tableTransactions).As("t")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("t."+colBookID).Eq(goqu.I("b."+colBookID)))).
		Select(
			goqu.I("t."+colLoanID),
			goqu.I("b."+colTitle),
			goqu.I("t."+colBorrowDate),
			goqu.L("t."+colLateFee+"::float8"),
		).
		Where(
			goqu.I("t."+colUserID).Eq(userID),
			goqu.I("t."+colReturnDate).IsNull(),
		).
		Order(goqu.I("t." + colLoanID).Asc()).
		Prepared(true).
		ToSQL()
}
