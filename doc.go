// Package unionwire provides:
//
// - A tagged union value (Union) holding at most one field of a fixed,
// immutable descriptor table (Table)
// - Two wire schemes over any thrift protocol: the self-describing
// StandardScheme (skips unknown or re-typed fields) and the compact
// TupleScheme (schema-committed, fails on unknown ids)
// - Equality, ordering and BLAKE3-based hashing over (field id, payload)
// - A stable error model via Issues (path, code, message)
// - Natural renderings ({fieldName: payload}) in JSON, YAML and CBOR
//
// Design policy:
// - Keep only public APIs in the root package; protocol drivers live under
// protocol/, byte codecs under codec/, schema files under schemafile/ and the
// CLI under cmd/unionwire.
// - Payloads form a closed sum type: Int16, Int32, Int64, Str, Bytes, Mapping.
// - Decoders never trust a transmitted size beyond Limits.
//
// Typical usage:
//
//	t := unionwire.MustTable("TestingUnions",
//		unionwire.FieldDescriptor{ID: 1, Name: "AnID", Kind: unionwire.KindI64},
//	)
//	u, err := unionwire.NewWith(t, 1, unionwire.Int64(42))
//	err = unionwire.Standard().Write(ctx, proto, u)
//
//	v, err := unionwire.GetAs[unionwire.Int64](u, 1)
package unionwire
