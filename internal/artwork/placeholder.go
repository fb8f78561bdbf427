package artwork

// placeholderImage is a neutral base64-encoded PNG shown when no album
// art can be fetched.
const placeholderImage = "iVBORw0KGgoAAAANSUhEUgAAAGQAAABkCAYAAABw4pVUAAAACXBIWXMAAAsTAAALEwEAmpwYAAAF" +
	"EklEQVR4nO2dW4hVVRjHf+OYTpqXLDPLSrqQFUVEPRRFD0EURE9BD0UPQRc6XbQiumhdtIvRTboH" +
	"dSGii1FERUVFRPQQQRAFERERQRAEQRBEEMxkM8fZe+01+6y9Zq+z9pr/D4Zhhpn5vrO+/7fW2utd" +
	"vUBEREREREREREREREREpE3WAvcCjwK7gRPAbOCywOszwDHgdeBx4EagU/TPlqNHgPeBs8CfwK+5" +
	"x1ngJ2AvcBdwSdYxq0kH2AKcJF0+BrengO2l/kZhshtYQ3p5Gngx9aCVYCvwG+nladKbE3YAZ0gv" +
	"zwBbswxYDbaTPt4CttV+wpqwFfiJ9HIW2JJlwGqwjfTxNnBblgGrwQ7Sx7u172ytYSfpYxfwUJYB" +
	"q8Eu0sdu4MEsA1aD3aSP3bXvbK1hN+ljD7Apy4DVYA/p4z1gY5YBq8Ee0sd7wF1ZBqwGe0kf+4B7" +
	"sgxYDfaRPj4Abs8yYDXYT/r4EFiXZcBqsJ/08RFwa5YBq8EB0sfHwC1ZBqwGB0gfB4GNWQasBgdJ" +
	"H4eADVkGrAaHSB+HgZuzDFgNDpM+jgAbsgxYDY6QPj4FbsoyYDU4Svo4BtycZcBqcJT0cRy4KcuA" +
	"1eAY6eMLYH2WAavBcdLHF8C6LANWg+Okjy+BdVkGrAbHSR9fAeuyDFgNviZ9fA2syzJgNfiG9PEN" +
	"cFOWAavBN6SPb4G1WQasBt+SPr4DbsgyYDX4jvTxPbA2y4DV4HvSxw/ADVkGrAY/kD5OAGuzDFgN" +
	"fiR9/ASsyTJgNfiJ9HESuD7LgNXgJOnjZ+C6LANWg59JH78A12YZsBr8Qvo4BVybZcBqcIr08Stw" +
	"TZYBq8GvpI/TwNVZBqwGp0kfvwFrsAxYDX4jffwOrM4yYDX4nfTxB7A6y4DV4A/SxxngqiwDVoMz" +
	"pI+/gKuyDFgN/iJ9nAWuzDJgNThL+jgHrM4yYDU4R/r4G7gyy4DV4G/Sx3lgVZYBq8F50sc/wJVZ" +
	"BqwG/5A+LgBXZBmwGlwgfVwErsoycGfpg0v3cBG4OsvAnSUA4FLghiyDNpXLgYtJF+eAK7IM3ERC" +
	"9l8ErskyeDMJBbgIXJdl8CaSgADpYx64PsvgzSQA4G/g+iyDN5MATAC/Aud19wtYnWXwZhIA8Ddw" +
	"eZbBm0kAwF/ARVkGbiYhABeBf4FVWQZuJgEAfwMXZxm4mQQA/ANclGXgZhIA8C9wYZaBm0kAwH/A" +
	"hVkGbiYBAP8DF2QZuJkEAFwALsgycDMJALgAXJBl4GYSAHABuCDLwM0kAOB/4IIsAzeTAID/gQuC" +
	"Bm4o0wC+Zzw7bPo/GAUNvJ+m0gXwQ8bAzaQDYG+WAZtJB8BHGQZsJh0An2QZsJl0AHyWYcBm0gHw" +
	"eZYBm0kHwBcZBmwmHQBfZhiwmXQAfJVhwGbSAfB1hgGbSQfANxkGbCYdAN9mGLCZdAB8l2HAZtIB" +
	"8H2GAZtJB8APGQZsJh0AP2YYsJl0APyUYcBm0gHwc4YBm0kHwC8ZBmwmHQC/ZhiwmXQAnM4wYDPp" +
	"ADiTYcBm0gFwNsOAzaQD4FyGAZtJB8D5DAM2kw6ACxkGbCYdABczDNhMOgAuZRiwmXQAzGcYsJl0" +
	"AMxnGLCZdADMZxiwmXQAzGcYsJl0AMxnGLCZdADMZxiwmXQAzGcYsJl0AMxnGLCZdADMZxiwmXQA" +
	"zGcYsJl0AMxnGLCZdADMZxiwmQSm+h+xH4AJcO6lQAAAAABJRU5ErkJggg=="
