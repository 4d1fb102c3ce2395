package domain

var Tables = []interface{}{
	&Tag{},
	&Product{},
	&Review{},
}
