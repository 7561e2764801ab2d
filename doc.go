// Package datastore maps typed records to SQL tables.
//
// A record type is described by a record.Descriptor, either written by hand with
// record.Funcs or derived from struct tags with package derive. The descriptor drives
// three visitors: a value writer that renders literals, a schema writer that renders
// column types, and a row reader that decodes fetched rows. Statements are rendered as
// literal SQL text for the driver's dialect and executed through a driver.Driver.
//
//	db, err := sqldb.Open(dialect.SQLite, "app.db", sqldb.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	store := datastore.New(db)
//
//	if err := datastore.Create(ctx, store, users); err != nil {
//		return err
//	}
//	err = datastore.Insert(ctx, store, users, User{ID: 3, Name: "hello"})
//	u, err := datastore.GetOne(ctx, store, users, datastore.Where().Int32("id", 3))
//
// Filters are conjunctions of equality terms. A nil or empty filter matches every row,
// which for Delete means the whole table is emptied; DeleteAll states that intent
// explicitly.
package datastore
