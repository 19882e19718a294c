package models

import "jobly/internal/query"

type fieldList = []query.Field

func addField[T any](f *fieldList, column string, v query.Optional[T]) {
	if val, ok := v.Get(); ok {
		*f = append(*f, query.Field{Column: column, Value: val})
	}
}
