package validation

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// bsonTypes maps each field type onto the BSON types the store accepts.
var bsonTypes = map[FieldType][]string{
	TypeString:        {"string"},
	TypeInt:           {"int", "long"},
	TypeNumber:        {"double", "int", "long", "decimal"},
	TypeDecimalString: {"decimal", "string"},
	TypeDate:          {"date"},
	TypeBool:          {"bool"},
	TypeObject:        {"object"},
	TypeArray:         {"array"},
}

type schemaNode struct {
	schema   bson.M
	required []string
	children map[string]*schemaNode
	order    []string
}

func newObjectNode() *schemaNode {
	return &schemaNode{
		schema:   bson.M{"bsonType": "object"},
		children: map[string]*schemaNode{},
	}
}

func (n *schemaNode) child(name string) *schemaNode {
	c, ok := n.children[name]
	if !ok {
		c = newObjectNode()
		n.children[name] = c
		n.order = append(n.order, name)
	}
	return c
}

func (n *schemaNode) render() bson.M {
	out := bson.M{}
	for k, v := range n.schema {
		out[k] = v
	}
	if len(n.required) > 0 {
		out["required"] = n.required
	}
	if len(n.children) > 0 {
		props := bson.M{}
		for _, name := range n.order {
			props[name] = n.children[name].render()
		}
		out["properties"] = props
	}
	return out
}

// JSONSchema translates set into a collection validator document: a
// $jsonSchema for the per-field rules and an $expr for the cross-field
// date ordering rules.
func JSONSchema(set *RuleSet) bson.M {
	root := newObjectNode()
	root.schema["additionalProperties"] = true

	var exprs bson.A
	for i := range set.Rules {
		rule := &set.Rules[i]
		if rule.After != "" {
			exprs = append(exprs, bson.M{
				"$gt": bson.A{"$" + rule.Field, "$" + siblingPath(rule.Field, rule.After)},
			})
			continue
		}

		segments := strings.Split(rule.Field, ".")
		parent := root
		for _, segment := range segments[:len(segments)-1] {
			parent = parent.child(segment)
		}
		leaf := segments[len(segments)-1]
		node := parent.child(leaf)
		for k, v := range fieldSchema(rule) {
			node.schema[k] = v
		}
		if rule.Required {
			parent.required = append(parent.required, leaf)
		}
	}

	validator := bson.M{"$jsonSchema": root.render()}
	switch len(exprs) {
	case 0:
	case 1:
		validator["$expr"] = exprs[0]
	default:
		validator["$expr"] = bson.M{"$and": exprs}
	}
	return validator
}

func fieldSchema(rule *Rule) bson.M {
	s := bson.M{}
	if rule.Message != "" {
		s["description"] = rule.Message
	}

	if types, ok := bsonTypes[rule.Type]; ok {
		if rule.Nullable {
			types = append(append([]string{}, types...), "null")
		}
		if len(types) == 1 {
			s["bsonType"] = types[0]
		} else {
			s["bsonType"] = types
		}
	}

	if rule.MinLength != nil {
		s["minLength"] = *rule.MinLength
	}
	if rule.MaxLength != nil {
		s["maxLength"] = *rule.MaxLength
	}
	if rule.Minimum != nil {
		s["minimum"] = *rule.Minimum
		if rule.ExclusiveMinimum {
			s["exclusiveMinimum"] = true
		}
	}
	if rule.Maximum != nil {
		s["maximum"] = *rule.Maximum
	}
	if len(rule.Enum) > 0 {
		s["enum"] = rule.Enum
	}
	if rule.Pattern != "" {
		s["pattern"] = rule.Pattern
	}
	if rule.MinItems != nil {
		s["minItems"] = *rule.MinItems
	}
	if rule.MaxItems != nil {
		s["maxItems"] = *rule.MaxItems
	}
	if rule.Items != nil {
		s["items"] = fieldSchema(rule.Items)
	}
	return s
}
