package neuro

// ExtractOptions controls ExtractAttrs.
type ExtractOptions struct {
	// IncludeParents merges in attributes extracted from parent
	// objects, recursively up the parent chain.
	IncludeParents bool
	// PreferChild decides name conflicts with parents: true keeps the
	// child's value, false lets the parent overwrite. Meaningless when
	// IncludeParents is false.
	PreferChild bool
	// SkipArray drops attributes declared as array-valued.
	SkipArray bool
	// SkipNone drops attributes that resolved to nil.
	SkipNone bool
}

// DefaultExtractOptions includes parents and prefers child values.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{IncludeParents: true, PreferChild: true}
}

// ExtractAttrs returns the object's annotations merged with its
// declared necessary and recommended attributes. The returned map is a
// fresh copy; mutating it does not touch the object. Attributes missing
// on the object resolve to nil. The object's primary quantity attribute
// is never included: it is payload, not metadata.
func ExtractAttrs(obj DomainObject, opts ExtractOptions) map[string]any {
	attrs := make(map[string]any, len(obj.Annotations()))
	for k, v := range obj.Annotations() {
		attrs[k] = v
	}

	specs := make([]AttrSpec, 0, len(obj.NecessaryAttrs())+len(obj.RecommendedAttrs()))
	specs = append(specs, obj.NecessaryAttrs()...)
	specs = append(specs, obj.RecommendedAttrs()...)
	for _, spec := range specs {
		if opts.SkipArray && spec.Array {
			continue
		}
		if q := obj.QuantityAttr(); q != "" && spec.Name == q {
			continue
		}
		v, ok := obj.GetAttr(spec.Name)
		if !ok {
			v = nil
		}
		attrs[spec.Name] = v
	}

	if opts.SkipNone {
		for k, v := range attrs {
			if v == nil {
				delete(attrs, k)
			}
		}
	}

	if !opts.IncludeParents {
		return attrs
	}

	for _, parent := range obj.Parents() {
		if parent == nil {
			continue
		}
		parentAttrs := ExtractAttrs(parent, opts)
		if opts.PreferChild {
			for k, v := range parentAttrs {
				if _, ok := attrs[k]; !ok {
					attrs[k] = v
				}
			}
		} else {
			for k, v := range parentAttrs {
				attrs[k] = v
			}
		}
	}
	return attrs
}

// SetAllAttrs sets an attribute on every domain object in container,
// which may be a single object or any nesting Collect accepts. With
// create false, an object lacking the attribute makes the call fail
// with a *MissingAttrError instead of being skipped: asking to update
// an attribute that does not exist is a programmer error.
func SetAllAttrs(container any, name string, value any, create bool) error {
	objs, err := Collect(container, "")
	if err != nil {
		return err
	}
	for _, obj := range objs {
		if err := obj.SetAttr(name, value, create); err != nil {
			return err
		}
	}
	return nil
}
