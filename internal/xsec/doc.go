// Package xsec provides neutrino cross-section models. Each model is an
// alg.Algorithm registered in the catalog under "xsec::*" and exposes
// [Model.XSec], the total cross section per nucleon (units of 1e-38 cm^2) as
// a function of neutrino energy in GeV. The parameterizations are effective
// fits, tunable entirely through the parameter store.
package xsec
