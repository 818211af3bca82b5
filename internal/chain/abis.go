package chain

// ABI fragments of the deployed contracts. Only the members the gateway calls are listed.

const universityABI = `[
 {"type":"function","name":"payFee","stateMutability":"payable","inputs":[{"name":"feeType","type":"string"}],"outputs":[]},
 {"type":"function","name":"getStudent","stateMutability":"view","inputs":[{"name":"student","type":"address"}],
  "outputs":[{"name":"studentAddress","type":"address"},{"name":"name","type":"string"},{"name":"department","type":"string"},{"name":"year","type":"uint256"},{"name":"feesPaid","type":"uint256"}]},
 {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
 {"type":"event","name":"FeePaid","anonymous":false,"inputs":[{"name":"student","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"timestamp","type":"uint256","indexed":false}]},
 {"type":"event","name":"EmployeeAdded","anonymous":false,"inputs":[{"name":"employee","type":"address","indexed":true},{"name":"role","type":"string","indexed":false}]}
]`

const studentRegistryABI = `[
 {"type":"function","name":"registerStudent","stateMutability":"nonpayable",
  "inputs":[{"name":"publicKey","type":"address"},{"name":"name","type":"string"},{"name":"rollNo","type":"string"},{"name":"department","type":"string"},{"name":"username","type":"string"},{"name":"password","type":"string"}],"outputs":[]},
 {"type":"function","name":"isStudent","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"isRollNoTaken","stateMutability":"view","inputs":[{"name":"rollNo","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"isUsernameTaken","stateMutability":"view","inputs":[{"name":"username","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
 {"type":"event","name":"StudentRegistered","anonymous":false,"inputs":[{"name":"student","type":"address","indexed":true},{"name":"name","type":"string","indexed":false},{"name":"rollNo","type":"string","indexed":false},{"name":"department","type":"string","indexed":false}]}
]`

const employeeRegistryABI = `[
 {"type":"function","name":"addEmployee","stateMutability":"nonpayable",
  "inputs":[{"name":"publicKey","type":"address"},{"name":"name","type":"string"},{"name":"department","type":"string"},{"name":"username","type":"string"},{"name":"password","type":"string"}],"outputs":[]},
 {"type":"function","name":"getEmployee","stateMutability":"view","inputs":[{"name":"publicKey","type":"address"}],
  "outputs":[{"name":"name","type":"string"},{"name":"department","type":"string"},{"name":"username","type":"string"},{"name":"exists","type":"bool"}]},
 {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const scholarshipABI = `[
 {"type":"function","name":"submitApplication","stateMutability":"nonpayable",
  "inputs":[{"name":"name","type":"string"},{"name":"department","type":"string"},{"name":"yearOfStudy","type":"uint256"},{"name":"reason","type":"string"},{"name":"amount","type":"uint256"}],"outputs":[]},
 {"type":"function","name":"getApplicationsCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"getApplication","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],
  "outputs":[{"name":"student","type":"address"},{"name":"name","type":"string"},{"name":"department","type":"string"},{"name":"yearOfStudy","type":"uint256"},{"name":"reason","type":"string"},{"name":"amount","type":"uint256"},{"name":"approved","type":"bool"},{"name":"rejected","type":"bool"},{"name":"timestamp","type":"uint256"}]},
 {"type":"function","name":"approveApplication","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
 {"type":"function","name":"rejectApplication","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
 {"type":"function","name":"getScholarshipBalance","stateMutability":"view","inputs":[{"name":"student","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const feePaymentABI = `[
 {"type":"function","name":"payFee","stateMutability":"nonpayable",
  "inputs":[{"name":"studentId","type":"string"},{"name":"amount","type":"uint256"},{"name":"semester","type":"string"},{"name":"description","type":"string"}],"outputs":[]}
]`

const payrollABI = `[
 {"type":"function","name":"registerEmployee","stateMutability":"nonpayable","inputs":[{"name":"employeeId","type":"string"},{"name":"employeeAddress","type":"address"}],"outputs":[]},
 {"type":"function","name":"processPayroll","stateMutability":"payable",
  "inputs":[{"name":"employeeId","type":"string"},{"name":"amount","type":"uint256"},{"name":"department","type":"string"},{"name":"description","type":"string"}],"outputs":[]},
 {"type":"function","name":"employeeAddresses","stateMutability":"view","inputs":[{"name":"employeeId","type":"string"}],"outputs":[{"name":"","type":"address"}]},
 {"type":"function","name":"getPayment","stateMutability":"view","inputs":[{"name":"employeeId","type":"string"}],
  "outputs":[{"name":"employeeId","type":"string"},{"name":"amount","type":"uint256"},{"name":"department","type":"string"},{"name":"description","type":"string"},{"name":"timestamp","type":"uint256"},{"name":"processed","type":"bool"}]},
 {"type":"function","name":"sendPayment","stateMutability":"payable","inputs":[{"name":"employee","type":"address"}],"outputs":[]},
 {"type":"function","name":"getBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const fundAllocationABI = `[
 {"type":"function","name":"allocateFunds","stateMutability":"nonpayable",
  "inputs":[{"name":"projectId","type":"string"},{"name":"amount","type":"uint256"},{"name":"category","type":"string"},{"name":"description","type":"string"}],"outputs":[]}
]`

const paymentsABI = `[
 {"type":"function","name":"sendPayment","stateMutability":"nonpayable",
  "inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"},{"name":"description","type":"string"}],"outputs":[]}
]`
