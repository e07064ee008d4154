// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim provides an event driven simulator for digital circuits.

A Model owns a set of nodes connected by ObservableValues. A node reads its
input values and writes its output values in two separate phases. Whenever an
ObservableValue changes, the nodes listening to it are marked dirty and are
evaluated again in the next round of the current step. A step ends when no
node is dirty anymore: the model is then stable.

Circuits with a combinational loop may never settle. The model detects this
by counting node evaluations during a step and returns an *OscillationError
once the count exceeds a limit proportional to the node count (see
IterationFactor and MinIterations).

Models are usually not built by hand but with the circuit package, using the
nodes from the hwlib package:

	c, err := circuit.Build("a, b", "out", circuit.Parts{
		hwlib.Nand("a=a, b=b, out=out"),
	})
	if err != nil {
		// handle error
	}
	if err = c.Init(); err != nil {
		// handle error
	}
	err = c.Set("a", 1)

Values of a running model must only be changed through Access or AccessErr.
Both lock the model, run the given function and then step the model until it
settles.

The expr and qmc packages implement boolean expressions and their
minimization. The builder package turns expressions back into circuits.
*/
package logicsim
