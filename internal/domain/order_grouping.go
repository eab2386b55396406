package domain

// GroupByOrder agrupa linhas planas em pedidos, na ordem em que cada pedido
// aparece pela primeira vez. Os itens mantêm a ordem das linhas.
func GroupByOrder(rows []OrderRow) []OrderView {
	views := make([]OrderView, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			i = len(views)
			index[row.OrderID] = i
			views = append(views, OrderView{
				OrderID:   row.OrderID,
				UserID:    row.UserID,
				CreatedAt: row.CreatedAt,
				Products:  make([]OrderProductView, 0, 1),
			})
		}
		views[i].Products = append(views[i].Products, productViewOf(row))
	}
	return views
}

// GroupByUser agrupa por usuário e, dentro de cada usuário, por pedido.
// Usuários e pedidos saem na ordem da primeira ocorrência.
func GroupByUser(rows []OrderRow) []UserOrderView {
	users := make([]UserOrderView, 0)
	userRows := make(map[string][]OrderRow)

	for _, row := range rows {
		if _, ok := userRows[row.UserID]; !ok {
			users = append(users, UserOrderView{
				UserID:   row.UserID,
				Username: row.Username,
				Name:     row.Name,
				Surname:  row.Surname,
			})
		}
		userRows[row.UserID] = append(userRows[row.UserID], row)
	}

	for i := range users {
		users[i].Orders = GroupByOrder(userRows[users[i].UserID])
	}
	return users
}

func productViewOf(row OrderRow) OrderProductView {
	return OrderProductView{
		ProductID:           row.ProductID,
		Product:             row.Product,
		Count:               row.Count,
		CategoryID:          row.CategoryID,
		Category:            row.Category,
		CategoryDescription: row.CategoryDescription,
		BranchID:            row.BranchID,
		Branch:              row.Branch,
		CompanyID:           row.CompanyID,
		Company:             row.Company,
	}
}
