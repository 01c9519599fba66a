package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoistPropTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "moves assignment into class",
			in: `class Foo extends React.Component {
  render() {
    return null;
  }
}

Foo.propTypes = {
  bar: PropTypes.string,
};
`,
			want: `class Foo extends React.Component {
  static propTypes = {
    bar: PropTypes.string,
  };
  render() {
    return null;
  }
}
`,
		},
		{
			name: "empty class body",
			in:   "class Foo extends React.Component {}\nFoo.propTypes = { a: PropTypes.bool };\n",
			want: "class Foo extends React.Component {\n  static propTypes = { a: PropTypes.bool };\n}\n",
		},
		{
			name: "no matching class",
			in:   "function Foo() {}\nFoo.propTypes = { a: PropTypes.bool };\n",
			want: "function Foo() {}\nFoo.propTypes = { a: PropTypes.bool };\n",
		},
		{
			name: "class already declares propTypes",
			in:   "class Foo extends React.Component {\n  static propTypes = {};\n}\nFoo.propTypes = { a: PropTypes.bool };\n",
			want: "class Foo extends React.Component {\n  static propTypes = {};\n}\nFoo.propTypes = { a: PropTypes.bool };\n",
		},
		{
			name: "nested field assignment stays",
			in:   "class Foo extends React.Component {}\nFoo.propTypes.a = PropTypes.bool;\n",
			want: "class Foo extends React.Component {}\nFoo.propTypes.a = PropTypes.bool;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.in, HoistPropTypes))
		})
	}
}

func TestInferClassTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "static field",
			in: `import * as React from 'react';
export default class MyComponent extends React.Component {
    static propTypes = {
        foo: React.PropTypes.string.isRequired,
    };
}
`,
			want: `import * as React from 'react';
type MyComponentProps = { foo: string; };
export default class MyComponent extends React.Component<MyComponentProps, {}> {
    static propTypes = {
        foo: React.PropTypes.string.isRequired,
    };
}
`,
		},
		{
			name: "static getter",
			in: `class A extends Component {
  static get propTypes() {
    return { foo: PropTypes.number };
  }
}
`,
			want: `type AProps = { foo: number | undefined; };
class A extends Component<AProps, {}> {
  static get propTypes() {
    return { foo: PropTypes.number };
  }
}
`,
		},
		{
			name: "state in constructor",
			in: `class A extends React.Component {
  constructor(props, context) {
    super(props, context);
    this.state = { foo: 1 };
  }
}
`,
			want: `type AState = { foo: number; };
class A extends React.Component<{}, AState> {
  constructor(props, context) {
    super(props, context);
    this.state = { foo: 1 };
  }
}
`,
		},
		{
			name: "initial state and update",
			in:   "class A extends React.PureComponent {\n  state = { foo: 1 };\n  go() { this.setState({ bar: 'x' }); }\n}\n",
			want: "type AState = { foo: number; } & { bar: string; };\nclass A extends React.PureComponent<{}, AState> {\n  state = { foo: 1 };\n  go() { this.setState({ bar: 'x' }); }\n}\n",
		},
		{
			name: "no state",
			in:   "class A extends React.Component {\n  render() { return null; }\n}\n",
			want: "class A extends React.Component<{}, {}> {\n  render() { return null; }\n}\n",
		},
		{
			name: "existing type arguments are replaced",
			in:   "class A extends React.Component<any> {\n  static propTypes = { a: PropTypes.bool.isRequired };\n}\n",
			want: "type AProps = { a: boolean; };\nclass A extends React.Component<AProps, {}> {\n  static propTypes = { a: PropTypes.bool.isRequired };\n}\n",
		},
		{
			name: "already typed class is left alone",
			in:   "class A extends React.Component<AProps, {}> {\n  state = { a: 1 };\n}\n",
			want: "class A extends React.Component<AProps, {}> {\n  state = { a: 1 };\n}\n",
		},
		{
			name: "not a component",
			in:   "class A extends Base {\n  state = { a: 1 };\n}\nclass B {}\n",
			want: "class A extends Base {\n  state = { a: 1 };\n}\nclass B {}\n",
		},
		{
			name: "updater function and arrow field",
			in:   "class A extends React.Component {\n  toggle = () => this.setState(prev => ({ open: !prev.open }));\n}\n",
			want: "type AState = { open: boolean; };\nclass A extends React.Component<{}, AState> {\n  toggle = () => this.setState(prev => ({ open: !prev.open }));\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.in, InferClassTypes))
		})
	}
}

func TestInferClassTypesUpdateSitesAtAnyDepth(t *testing.T) {
	in := `import * as React from 'react';

export default class MyComponent extends React.Component {
    onclick() {
        if (Math.random() > 0.5) {
            this.setState({foo: 1, bar: 2})
        }
        this.otherMethod()
    }

    otherMethod() {
        for (const foo of [1,2,3]) {
            if (foo > 2) {
                this.setState({baz: foo})
            }
        }
    }

    addLargeObjectToState() {
        this.setState({
            something: {
                big: 123,
                here: 'string',
                of: [{a: 1}, {a: 2}]
            }
        })
    }
}
`
	out := run(t, in, InferClassTypes, CollapseIntersections)

	want := `type MyComponentState = {
    foo: number;
    bar: number;
    baz: number;
    something: {
        big: number;
        here: string;
        of: { a: number; }[];
    };
};
export default class MyComponent extends React.Component<{}, MyComponentState> {`
	assert.Contains(t, out, want)
}

func TestInferStatelessTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "function declaration",
			in:   "function Hey({ name }) {\n  return <div>hey, {name}</div>\n}\n\nHey.propTypes = {\n  name: React.PropTypes.string.isRequired,\n}\n",
			want: "type HeyProps = { name: string; };\nconst Hey: React.FC<HeyProps> = ({ name }) => {\n  return <div>hey, {name}</div>\n};\n\nHey.propTypes = {\n  name: React.PropTypes.string.isRequired,\n}\n",
		},
		{
			name: "arrow function variable",
			in:   "export const Hello = ({ message }) => <div>{message}</div>;\nHello.propTypes = { message: PropTypes.string };\n",
			want: "type HelloProps = { message: string | undefined; };\nexport const Hello: React.FC<HelloProps> = ({ message }) => <div>{message}</div>;\nHello.propTypes = { message: PropTypes.string };\n",
		},
		{
			name: "empty props",
			in:   "function A() { return null; }\nA.propTypes = { children: PropTypes.node };\n",
			want: "const A: React.FC<{}> = () => { return null; };\nA.propTypes = { children: PropTypes.node };\n",
		},
		{
			name: "default export",
			in:   "export default async function A(props) { return null; }\nA.propTypes = { a: PropTypes.bool.isRequired };\n",
			want: "type AProps = { a: boolean; };\nconst A: React.FC<AProps> = async (props) => { return null; };\nexport default A;\nA.propTypes = { a: PropTypes.bool.isRequired };\n",
		},
		{
			name: "already annotated",
			in:   "const A: React.FC<P> = () => null;\nA.propTypes = { a: PropTypes.bool };\n",
			want: "const A: React.FC<P> = () => null;\nA.propTypes = { a: PropTypes.bool };\n",
		},
		{
			name: "not a function",
			in:   "const A = connect(B);\nA.propTypes = { a: PropTypes.bool };\n",
			want: "const A = connect(B);\nA.propTypes = { a: PropTypes.bool };\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.in, InferStatelessTypes))
		})
	}
}

func TestCollapseIntersections(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain shapes",
			in:   "type A = { a: string; } & { b: number; } & { a: number; };\n",
			want: "type A = { a: string | number; b: number; };\n",
		},
		{
			name: "reference member kept",
			in:   "type A = { a: string } & Foo;\n",
			want: "type A = { a: string } & Foo;\n",
		},
		{
			name: "not an intersection",
			in:   "type A = { a: string };\n",
			want: "type A = { a: string };\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.in, CollapseIntersections))
		})
	}
}

func TestStripPropTypesAssignments(t *testing.T) {
	in := `class SomeComponent extends React.Component<{
        foo: string;
        baz: string;
    }, {
        bar: string;
    }> {
}
SomeComponent.propTypes = { foo: React.PropTypes.string };
SomeComponent.propTypes.baz = React.PropTypes.string.isRequired;


class AnotherComponent extends React.Component<{
        lol: number;
    }> {
}
AnotherComponent.propTypes = { lol: React.PropTypes.number };
`
	want := `class SomeComponent extends React.Component<{
        foo: string;
        baz: string;
    }, {
        bar: string;
    }> {
}


class AnotherComponent extends React.Component<{
        lol: number;
    }> {
}
`
	once := run(t, in, StripPropTypesAssignments)
	assert.Equal(t, want, once)
	assert.Equal(t, once, run(t, once, StripPropTypesAssignments))
}

func TestStripStaticPropTypes(t *testing.T) {
	in := `class A extends React.Component {
  static propTypes = {
    a: PropTypes.string,
  };
  static defaultProps = {};
  render() { return null; }
}
class B extends React.Component {
  static get propTypes() {
    return {};
  }
}
class C {
  static propTypes = {};
}
`
	want := `class A extends React.Component {
  static defaultProps = {};
  render() { return null; }
}
class B extends React.Component {
}
class C {
  static propTypes = {};
}
`
	assert.Equal(t, want, run(t, in, StripStaticPropTypes))
}

func TestStripPropTypesImports(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "library import",
			in:   "import PropTypes from 'prop-types';\nimport React from 'react';\n",
			want: "import React from 'react';\n",
		},
		{
			name: "named binding among others",
			in:   "import React, { PropTypes, Component } from 'react';\n",
			want: "import React, { Component } from 'react';\n",
		},
		{
			name: "only named binding with default",
			in:   "import React, { PropTypes } from 'react';\n",
			want: "import React from 'react';\n",
		},
		{
			name: "only named binding",
			in:   "import { PropTypes } from 'react';\nfoo();\n",
			want: "foo();\n",
		},
		{
			name: "untouched framework import",
			in:   "import { Component } from 'react';\n",
			want: "import { Component } from 'react';\n",
		},
		{
			name: "require",
			in:   "const PropTypes = require('prop-types');\nfoo();\n",
			want: "foo();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.in, StripPropTypesImports))
		})
	}
}
